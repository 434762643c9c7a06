package graph

import (
	"errors"
	"sort"
)

// ParentsFunc returns the parent ids of a commit.
type ParentsFunc func(id string) ([]string, error)

// Stop, returned from a Walk visitor, ends the walk without error.
var Stop = errors.New("stop walk")

// Walk visits every commit reachable from start in breadth-first order,
// each at most once. Empty ids are skipped. Returning Stop from fn ends the
// walk early.
func Walk(start string, parents ParentsFunc, fn func(id string) error) error {
	if start == "" {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if err := fn(id); err != nil {
			if errors.Is(err, Stop) {
				return nil
			}
			return err
		}

		ps, err := parents(id)
		if err != nil {
			return err
		}
		for _, p := range ps {
			if p == "" || visited[p] {
				continue
			}
			visited[p] = true
			queue = append(queue, p)
		}
	}
	return nil
}

// BFS returns the ids reachable from start in breadth-first order.
func BFS(start string, parents ParentsFunc) ([]string, error) {
	var order []string
	err := Walk(start, parents, func(id string) error {
		order = append(order, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Edge links a commit to one of its parents.
type Edge struct {
	Child  string
	Parent string
}

// Edges returns every (child, parent) pair reachable from start, each once,
// sorted by child then parent. parents is called once per commit.
func Edges(start string, parents ParentsFunc) ([]Edge, error) {
	seen := make(map[Edge]bool)
	var edges []Edge

	loaded := make(map[string][]string)
	cached := func(id string) ([]string, error) {
		if ps, ok := loaded[id]; ok {
			return ps, nil
		}
		ps, err := parents(id)
		if err != nil {
			return nil, err
		}
		loaded[id] = ps
		return ps, nil
	}

	err := Walk(start, cached, func(id string) error {
		ps, err := cached(id)
		if err != nil {
			return err
		}
		for _, p := range ps {
			if p == "" {
				continue
			}
			e := Edge{Child: id, Parent: p}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Child != edges[j].Child {
			return edges[i].Child < edges[j].Child
		}
		return edges[i].Parent < edges[j].Parent
	})
	return edges, nil
}
