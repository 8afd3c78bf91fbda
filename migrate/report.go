package migrate

import "github.com/google/uuid"

// Report summarizes one conversion run for logs and terminal output.
type Report struct {
	ID         string   // unique run identifier
	Packages   int      // resolved packages in the graph
	Selectors  int      // distinct selectors indexed
	Comments   int      // passthrough comment entries
	Unresolved []string // dependency selectors with no matching block
	Skipped    []string // name@version pairs dropped by per-name keying
}

// NewReport starts a report for the given graph.
func NewReport(g *Graph) *Report {
	return &Report{
		ID:         "migration_" + uuid.New().String(),
		Packages:   len(g.Packages),
		Selectors:  len(g.index),
		Comments:   len(g.Comments),
		Unresolved: g.Unresolved,
	}
}
