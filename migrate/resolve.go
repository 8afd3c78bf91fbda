package migrate

import (
	"errors"
	"fmt"

	"github.com/unexge/lockmigrate/yarnlock"
)

var (
	// ErrMissingVersion indicates a block that never set its version key.
	ErrMissingVersion = errors.New("block has no version")
	// ErrDuplicateSelector indicates one selector resolved by two blocks.
	ErrDuplicateSelector = errors.New("selector resolved by multiple blocks")
)

// Package is one resolved package: a yarnlock.Block with its dependency
// selectors linked to the packages that satisfy them.
type Package struct {
	Name      string // from the block's first selector
	Version   string // resolved concrete version
	Resolved  string
	Integrity string

	// Selectors are every name@range spelling that resolves to this
	// package, in source order.
	Selectors []yarnlock.PackageRef

	// Dependencies are this package's direct and optional dependency
	// edges, in source order.
	Dependencies []Dependency

	Pos yarnlock.Position

	// Unlinked selectors from the source block, kept for the second
	// resolution pass.
	required []yarnlock.PackageRef
	optional []yarnlock.PackageRef
}

// Dependency is one edge of the resolved graph. Target is nil when no
// block satisfies the selector (partial lockfiles are tolerated, matching
// the parser's forward-compatibility stance).
type Dependency struct {
	Name     string
	Range    string
	Optional bool
	Target   *Package
}

// Selector returns the dependency's name@range spelling.
func (d Dependency) Selector() string { return d.Name + "@" + d.Range }

// Graph is a fully linked dependency graph built from parsed entries.
type Graph struct {
	Packages []*Package // in source order
	Comments []string   // free-standing comments, in source order

	// Unresolved lists the selectors of dependency edges with no target.
	Unresolved []string

	index map[string]*Package // name@range -> package
}

// PackageFor returns the package resolving the given name@range selector,
// or nil.
func (g *Graph) PackageFor(name, rng string) *Package {
	return g.index[name+"@"+rng]
}

// Resolve links parsed lockfile entries into a dependency graph. Each
// block becomes one Package; every selector of every block is indexed and
// each dependency edge is pointed at the package satisfying it.
func Resolve(entries []yarnlock.Entry) (*Graph, error) {
	g := &Graph{index: make(map[string]*Package)}

	for _, e := range entries {
		if e.Kind == yarnlock.EntryComment {
			g.Comments = append(g.Comments, e.Comment)
			continue
		}
		b := e.Block
		if b.Version == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingVersion, b.Packages[0].Name)
		}
		pkg := &Package{
			Name:      b.Packages[0].Name,
			Version:   b.Version,
			Resolved:  b.Resolved,
			Integrity: b.Integrity,
			Selectors: b.Packages,
			Pos:       b.Pos,
			required:  b.Dependencies,
			optional:  b.OptionalDependencies,
		}
		for _, sel := range b.Packages {
			key := sel.String()
			if prev, ok := g.index[key]; ok && prev != pkg {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateSelector, key)
			}
			g.index[key] = pkg
		}
		g.Packages = append(g.Packages, pkg)
	}

	// Link edges in a second pass so forward references resolve.
	for _, pkg := range g.Packages {
		for _, ref := range pkg.required {
			g.link(pkg, ref, false)
		}
		for _, ref := range pkg.optional {
			g.link(pkg, ref, true)
		}
	}

	return g, nil
}

func (g *Graph) link(pkg *Package, ref yarnlock.PackageRef, optional bool) {
	edge := Dependency{
		Name:     ref.Name,
		Range:    ref.Version,
		Optional: optional,
		Target:   g.index[ref.String()],
	}
	if edge.Target == nil {
		g.Unresolved = append(g.Unresolved, edge.Selector())
	}
	pkg.Dependencies = append(pkg.Dependencies, edge)
}
