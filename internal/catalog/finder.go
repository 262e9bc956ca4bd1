package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectFileName is the canonical project description file name inside
// an .xcodeproj bundle.
const ProjectFileName = "project.pbxproj"

// skipDirs are directory names never descended into during discovery.
// They hold generated or vendored trees that may contain stale copies.
var skipDirs = map[string]bool{
	".git":         true,
	".build":       true,
	"node_modules": true,
	"DerivedData":  true,
	"Pods":         true,
	"Carthage":     true,
}

// FindProjects walks root and returns every project.pbxproj path found,
// sorted. Hidden directories other than .xcodeproj bundles are skipped.
func FindProjects(ctx context.Context, root string) ([]string, error) {
	var found []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			name := info.Name()
			if skipDirs[name] {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") && path != root && !strings.HasSuffix(name, ".xcodeproj") {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == ProjectFileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}

// ResolveProjectPath accepts either a project.pbxproj path or an
// .xcodeproj bundle directory and returns the path of the project file
// itself.
func ResolveProjectPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	inner := filepath.Join(path, ProjectFileName)
	if _, err := os.Stat(inner); err != nil {
		return "", fmt.Errorf("resolving %s: no %s inside: %w", path, ProjectFileName, err)
	}
	return inner, nil
}
