package repo

import (
	"github.com/keshon/wit/internal/repo/graph"
	"github.com/keshon/wit/internal/repo/meta"
)

// Edges returns the parent links of every commit reachable from HEAD.
func (r *Repository) Edges() ([]graph.Edge, error) {
	return graph.Edges(r.refs.Head, r.Commits.Parents)
}

// Log returns up to limit commits reachable from HEAD in breadth-first
// order. A limit of zero or less means no limit.
func (r *Repository) Log(limit int) ([]*meta.Commit, error) {
	var out []*meta.Commit
	err := graph.Walk(r.refs.Head, r.Commits.Parents, func(id string) error {
		if limit > 0 && len(out) >= limit {
			return graph.Stop
		}
		c, err := r.Commits.Get(id)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
