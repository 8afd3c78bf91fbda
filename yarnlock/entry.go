package yarnlock

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// PackageRef is a (name, version selector) pair as written by a dependent.
// In a block header the version is a range (e.g. "^1.0.0"); the pair is
// not yet resolved to a concrete block.
type PackageRef struct {
	Name    string
	Version string
}

// String returns the selector in its canonical "name@range" spelling.
func (r PackageRef) String() string { return r.Name + "@" + r.Version }

// Block is one dependency-resolution record: every selector in Packages
// resolved to the same concrete Version. All string fields are substrings
// of the source buffer.
type Block struct {
	// Packages holds every (name, range) selector this block satisfies,
	// in source order. Never empty for a successfully parsed block.
	Packages []PackageRef

	Version   string // resolved concrete version; empty if never set
	Resolved  string // download source URL/spec
	Integrity string // checksum; empty if the key was never present

	// Direct dependency selectors, in source order. Not resolved to
	// blocks; that is the caller's job.
	Dependencies         []PackageRef
	OptionalDependencies []PackageRef

	Pos Position
}

// Dependency looks up a direct dependency selector by package name.
// Returns the range and true if found.
func (b *Block) Dependency(name string) (string, bool) {
	for _, d := range b.Dependencies {
		if d.Name == name {
			return d.Version, true
		}
	}
	return "", false
}

// EntryKind discriminates the Entry tagged union.
type EntryKind int

const (
	EntryComment EntryKind = iota // standalone top-level comment line
	EntryBlock                    // dependency block
)

// Entry is one top-level item of a lockfile: either a free-standing
// comment or a dependency block. Kind determines which field is set.
type Entry struct {
	Kind    EntryKind
	Comment string // populated when Kind == EntryComment, '#' stripped
	Block   *Block // populated when Kind == EntryBlock
}
