package migrate

import (
	"encoding/json"
	"io"
)

// NPMLockfile is an npm package-lock.json document, lockfileVersion 1.
type NPMLockfile struct {
	Name            string                    `json:"name"`
	Version         string                    `json:"version"`
	LockfileVersion int                       `json:"lockfileVersion"`
	Requires        bool                      `json:"requires"`
	Dependencies    map[string]*NPMDependency `json:"dependencies,omitempty"`
}

// NPMDependency is one entry of the package-lock dependencies map.
type NPMDependency struct {
	Version   string            `json:"version"`
	Resolved  string            `json:"resolved,omitempty"`
	Integrity string            `json:"integrity,omitempty"`
	Optional  bool              `json:"optional,omitempty"`
	Requires  map[string]string `json:"requires,omitempty"`
}

// ConvertNPM translates a resolved graph into a package-lock.json v1
// document. name and version fill the document header. npm keys its map
// by bare package name, so when the yarn graph holds several resolved
// versions of one name the first (source order) wins; the rest are
// reported on the returned Report.
func ConvertNPM(g *Graph, name, version string) (*NPMLockfile, *Report) {
	lock := &NPMLockfile{
		Name:            name,
		Version:         version,
		LockfileVersion: 1,
		Requires:        true,
	}
	report := NewReport(g)

	// A package is optional in npm terms when nothing requires it
	// non-optionally.
	hasRequired := make(map[*Package]bool)
	hasOptional := make(map[*Package]bool)
	for _, pkg := range g.Packages {
		for _, edge := range pkg.Dependencies {
			if edge.Target == nil {
				continue
			}
			if edge.Optional {
				hasOptional[edge.Target] = true
			} else {
				hasRequired[edge.Target] = true
			}
		}
	}

	if len(g.Packages) > 0 {
		lock.Dependencies = make(map[string]*NPMDependency, len(g.Packages))
	}
	for _, pkg := range g.Packages {
		if _, taken := lock.Dependencies[pkg.Name]; taken {
			report.Skipped = append(report.Skipped, pkg.Name+"@"+pkg.Version)
			continue
		}
		dep := &NPMDependency{
			Version:   pkg.Version,
			Resolved:  pkg.Resolved,
			Integrity: pkg.Integrity,
			Optional:  hasOptional[pkg] && !hasRequired[pkg],
		}
		for _, edge := range pkg.Dependencies {
			if dep.Requires == nil {
				dep.Requires = make(map[string]string, len(pkg.Dependencies))
			}
			dep.Requires[edge.Name] = edge.Range
		}
		lock.Dependencies[pkg.Name] = dep
	}

	return lock, report
}

// Write serializes the document as indented JSON, matching npm's own
// two-space formatting.
func (l *NPMLockfile) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
