package report

import (
	"sort"

	"github.com/papapumpkin/parallax/internal/pbx"
)

// Summarize derives the summary of a decoded project. The project is read
// only; dangling references leave the corresponding summary detail empty.
func Summarize(project *pbx.Project) *Summary {
	s := &Summary{
		ArchiveVersion: project.ArchiveVersion,
		ObjectVersion:  project.ObjectVersion,
		RootObject:     string(project.RootObject),
		ObjectCount:    len(project.Objects),
	}

	counts := make(map[string]int)
	unknown := make(map[string]bool)
	for _, obj := range project.Objects {
		counts[string(obj.Type())]++
		switch o := obj.(type) {
		case *pbx.NativeTarget:
			s.Targets = append(s.Targets, Target{
				Name:         o.Name,
				Isa:          string(pbx.ObjectTypeNativeTarget),
				ProductType:  o.ProductType,
				Phases:       len(o.BuildPhases),
				Dependencies: len(o.Dependencies),
				Packages:     len(o.PackageProductDependencies),
			})
		case *pbx.AggregateTarget:
			s.Targets = append(s.Targets, Target{
				Name:         o.Name,
				Isa:          string(pbx.ObjectTypeAggregateTarget),
				Phases:       len(o.BuildPhases),
				Dependencies: len(o.Dependencies),
			})
		case *pbx.LegacyTarget:
			s.Targets = append(s.Targets, Target{
				Name:         o.Name,
				Isa:          string(pbx.ObjectTypeLegacyTarget),
				Phases:       len(o.BuildPhases),
				Dependencies: len(o.Dependencies),
			})
		case *pbx.UnknownObject:
			unknown[string(o.Type())] = true
		}
	}

	s.Kinds = make([]KindCount, 0, len(counts))
	for isa, n := range counts {
		s.Kinds = append(s.Kinds, KindCount{Isa: isa, Count: n})
	}
	sort.Slice(s.Kinds, func(i, j int) bool { return s.Kinds[i].Isa < s.Kinds[j].Isa })

	sort.Slice(s.Targets, func(i, j int) bool { return s.Targets[i].Name < s.Targets[j].Name })

	for isa := range unknown {
		s.UnknownIsas = append(s.UnknownIsas, isa)
	}
	sort.Strings(s.UnknownIsas)

	root, ok := project.Objects[project.RootObject].(*pbx.ProjectObject)
	if ok {
		s.RootResolved = true
		s.Configurations = configurationNames(project, root)
	}
	return s
}

// configurationNames follows root -> configuration list -> configurations,
// tolerating a dangling reference at every hop.
func configurationNames(project *pbx.Project, root *pbx.ProjectObject) []string {
	list, ok := project.Objects[root.BuildConfigurationList].(*pbx.ConfigurationList)
	if !ok {
		return nil
	}
	var names []string
	for _, id := range list.BuildConfigurations {
		if cfg, ok := project.Objects[id].(*pbx.BuildConfiguration); ok {
			names = append(names, cfg.Name)
		}
	}
	return names
}
