package task

import (
	"fmt"

	"github.com/josephgoksu/taskrank/models"
)

// CycleError reports a dependency loop found within a batch.
type CycleError struct {
	Path []string // task ids, first and last are equal
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %v", e.Path)
}

// FindDependencyCycle walks the dependency graph of tasks that carry an id.
// Dependencies on ids outside the batch are ignored. It returns nil when the
// graph is acyclic.
func FindDependencyCycle(tasks []models.Task) *CycleError {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		if t.ID != "" {
			byID[t.ID] = t
		}
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(id string) *CycleError
	visit = func(id string) *CycleError {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, dep := range byID[id].Dependencies {
			if _, inBatch := byID[dep]; !inBatch {
				continue
			}
			if onStack[dep] {
				return &CycleError{Path: cyclePath(stack, dep)}
			}
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
		return nil
	}

	for _, t := range tasks {
		if t.ID == "" || visited[t.ID] {
			continue
		}
		if err := visit(t.ID); err != nil {
			return err
		}
	}
	return nil
}

func cyclePath(stack []string, start string) []string {
	for i, id := range stack {
		if id == start {
			path := append([]string{}, stack[i:]...)
			return append(path, start)
		}
	}
	return []string{start, start}
}
