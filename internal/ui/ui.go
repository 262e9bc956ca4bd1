package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/pbx"
	"github.com/papapumpkin/parallax/internal/report"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// Printer writes human-facing status lines to stderr, leaving stdout free
// for machine-readable report output.
type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, dim+"%s"+reset+"\n", msg)
}

// Summary renders a decoded project digest in the standard terminal layout.
// Kind rows beyond maxListed are collapsed into a trailing count.
func (p *Printer) Summary(s *report.Summary, maxListed int) {
	if s.Source != "" {
		fmt.Fprintf(os.Stderr, bold+cyan+"project: %s"+reset+"\n", s.Source)
	}
	fmt.Fprintf(os.Stderr, "  archive version: %s\n", s.ArchiveVersion)
	fmt.Fprintf(os.Stderr, "  object version:  %s\n", s.ObjectVersion)
	root := s.RootObject
	if !s.RootResolved {
		root += " " + red + "(unresolved)" + reset
	}
	fmt.Fprintf(os.Stderr, "  root object:     %s\n", root)
	fmt.Fprintf(os.Stderr, "  objects:         %d\n", s.ObjectCount)

	if len(s.Targets) > 0 {
		fmt.Fprintf(os.Stderr, "\n"+bold+"targets:"+reset+"\n")
		for _, t := range s.Targets {
			fmt.Fprintf(os.Stderr, "  %-20s %-18s "+dim+"phases:%d deps:%d pkgs:%d"+reset+"\n",
				t.Name, t.Isa, t.Phases, t.Dependencies, t.Packages)
			if t.ProductType != "" {
				fmt.Fprintf(os.Stderr, "    "+dim+"%s"+reset+"\n", t.ProductType)
			}
		}
	}

	if len(s.Kinds) > 0 {
		fmt.Fprintf(os.Stderr, "\n"+bold+"kinds:"+reset+"\n")
		shown := s.Kinds
		if maxListed > 0 && len(shown) > maxListed {
			shown = shown[:maxListed]
		}
		for _, k := range shown {
			fmt.Fprintf(os.Stderr, "  %-32s %d\n", k.Isa, k.Count)
		}
		if len(s.Kinds) > len(shown) {
			fmt.Fprintf(os.Stderr, dim+"  … and %d more"+reset+"\n", len(s.Kinds)-len(shown))
		}
	}

	if len(s.Configurations) > 0 {
		fmt.Fprintf(os.Stderr, "\n"+bold+"configurations:"+reset+" %s\n", strings.Join(s.Configurations, ", "))
	}

	if len(s.UnknownIsas) > 0 {
		fmt.Fprintf(os.Stderr, "\n"+yellow+"⚠ unknown isas:"+reset+" %s\n", strings.Join(s.UnknownIsas, ", "))
	}
}

func (p *Printer) CheckPass(path string, objectCount int) {
	fmt.Fprintf(os.Stderr, green+"✓ %s"+reset+dim+" (%d objects)"+reset+"\n", path, objectCount)
}

func (p *Printer) CheckFail(path string, err error) {
	fmt.Fprintf(os.Stderr, red+"✗ %s"+reset+"\n", path)
	fmt.Fprintf(os.Stderr, "  "+red+"• "+reset+"%s\n", Diagnostic(err))
}

func (p *Printer) CheckSummary(ok, failed int) {
	if failed == 0 {
		fmt.Fprintf(os.Stderr, green+bold+"✓ %d project(s) decoded"+reset+"\n", ok)
		return
	}
	fmt.Fprintf(os.Stderr, red+bold+"✗ %d of %d project(s) failed"+reset+"\n", failed, ok+failed)
}

func (p *Printer) ScanStart(root string) {
	fmt.Fprintf(os.Stderr, cyan+"◆ scan"+reset+" %s\n", root)
}

func (p *Printer) ScanResult(rec catalog.Record) {
	if rec.Status == catalog.StatusOK {
		fmt.Fprintf(os.Stderr, "  "+green+"✓ %s"+reset+dim+" objects:%d targets:%d"+reset+"\n",
			rec.Path, rec.ObjectCount, rec.TargetCount)
		return
	}
	fmt.Fprintf(os.Stderr, "  "+red+"✗ %s"+reset+" — %s\n", rec.Path, rec.Diagnostic)
}

func (p *Printer) ScanDone(ok, failed int) {
	fmt.Fprintf(os.Stderr, green+bold+"✓ scan complete"+reset+" — %d ok, %d failed\n", ok, failed)
}

// CatalogProjects lists recorded projects, newest scan metadata included.
// Rows beyond maxListed are collapsed into a trailing count.
func (p *Printer) CatalogProjects(recs []catalog.Record, maxListed int) {
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, dim+"catalog is empty — run scan first"+reset)
		return
	}
	fmt.Fprintf(os.Stderr, bold+"catalog: %d project(s)"+reset+"\n", len(recs))
	shown := recs
	if maxListed > 0 && len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	for _, r := range shown {
		if r.Status == catalog.StatusOK {
			fmt.Fprintf(os.Stderr, "  "+green+"✓"+reset+" %s "+dim+"objects:%d targets:%d %s"+reset+"\n",
				r.Path, r.ObjectCount, r.TargetCount, r.ScannedAt.Format(time.DateTime))
		} else {
			fmt.Fprintf(os.Stderr, "  "+red+"✗"+reset+" %s "+red+"%s"+reset+"\n", r.Path, r.Diagnostic)
		}
	}
	if len(recs) > len(shown) {
		fmt.Fprintf(os.Stderr, dim+"  … and %d more"+reset+"\n", len(recs)-len(shown))
	}
}

// CatalogKinds lists aggregate discriminator counts across the catalog.
// Rows beyond maxListed are collapsed into a trailing count.
func (p *Printer) CatalogKinds(totals []catalog.KindTotal, maxListed int) {
	if len(totals) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n"+bold+"kinds across catalog:"+reset+"\n")
	shown := totals
	if maxListed > 0 && len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	for _, k := range shown {
		fmt.Fprintf(os.Stderr, "  %-32s %d\n", k.Isa, k.Count)
	}
	if len(totals) > len(shown) {
		fmt.Fprintf(os.Stderr, dim+"  … and %d more"+reset+"\n", len(totals)-len(shown))
	}
}

func (p *Printer) WatchStart(path string) {
	fmt.Fprintf(os.Stderr, cyan+"◆ watch"+reset+" %s "+dim+"(ctrl-c to stop)"+reset+"\n", path)
}

func (p *Printer) ReloadOK(at time.Time, objectCount int) {
	fmt.Fprintf(os.Stderr, dim+"%s "+reset+green+"✓ reload"+reset+dim+" (%d objects)"+reset+"\n",
		at.Format("15:04:05"), objectCount)
}

func (p *Printer) ReloadFailed(at time.Time, err error) {
	fmt.Fprintf(os.Stderr, dim+"%s "+reset+red+"✗ reload"+reset+" — %s\n",
		at.Format("15:04:05"), Diagnostic(err))
}

// Diagnostic renders err as a one-line "<kind>: <path>" string suitable for
// check output and catalog rows. Decode failures carry the dotted field path;
// anything else falls back to err.Error().
func Diagnostic(err error) string {
	var de *pbx.DecodeError
	if !errors.As(err, &de) {
		return err.Error()
	}
	label := "decode error"
	switch {
	case errors.Is(err, pbx.ErrMissingField):
		label = "missing required field"
	case errors.Is(err, pbx.ErrTypeMismatch):
		label = "type mismatch"
	case errors.Is(err, pbx.ErrUnsupportedValue):
		label = "unsupported value"
	case errors.Is(err, pbx.ErrMalformedDocument):
		label = "malformed document"
	}
	if len(de.Path) == 0 {
		return label
	}
	return label + ": " + de.Path.String()
}
