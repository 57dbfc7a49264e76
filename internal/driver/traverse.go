package driver

import (
	"github.com/agenthands/travelmate/internal/core/model"
)

// neighborFunc lists the direct successors of key in insertion order.
type neighborFunc func(key string) ([]string, error)

// bfsWithin walks successors breadth-first up to hops levels and returns the
// visited keys nearest first, start included.
func bfsWithin(start string, hops int, next neighborFunc) ([]string, error) {
	visited := map[string]bool{start: true}
	order := []string{start}
	level := []string{start}

	for d := 0; d < hops && len(level) > 0; d++ {
		var nextLevel []string
		for _, u := range level {
			succ, err := next(u)
			if err != nil {
				return nil, err
			}
			for _, v := range succ {
				if visited[v] {
					continue
				}
				visited[v] = true
				order = append(order, v)
				nextLevel = append(nextLevel, v)
			}
		}
		level = nextLevel
	}

	return order, nil
}

// bfsPath finds a shortest directed path from start to goal. Ties resolve
// to the first successor in insertion order.
func bfsPath(start, goal string, next neighborFunc) ([]string, error) {
	if start == goal {
		return []string{start}, nil
	}

	parent := map[string]string{start: ""}
	queue := []string{start}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		succ, err := next(u)
		if err != nil {
			return nil, err
		}
		for _, v := range succ {
			if _, seen := parent[v]; seen {
				continue
			}
			parent[v] = u
			if v == goal {
				return unwind(parent, start, goal), nil
			}
			queue = append(queue, v)
		}
	}

	return nil, model.ErrNoPath
}

func unwind(parent map[string]string, start, goal string) []string {
	var path []string
	for at := goal; ; at = parent[at] {
		path = append(path, at)
		if at == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
