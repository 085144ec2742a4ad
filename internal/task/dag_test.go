package task

import (
	"testing"

	"github.com/josephgoksu/taskrank/models"
)

func TestFindDependencyCycle_NoCycle(t *testing.T) {
	// A <- B <- C (linear, no cycle)
	tasks := []models.Task{
		{ID: "task-A", Title: "Task A"},
		{ID: "task-B", Title: "Task B", Dependencies: models.Dependencies{"task-A"}},
		{ID: "task-C", Title: "Task C", Dependencies: models.Dependencies{"task-B"}},
	}

	if err := FindDependencyCycle(tasks); err != nil {
		t.Errorf("FindDependencyCycle() returned error for acyclic graph: %v", err)
	}
}

func TestFindDependencyCycle_WithCycle(t *testing.T) {
	tasks := []models.Task{
		{ID: "X", Title: "Task X", Dependencies: models.Dependencies{"Y"}},
		{ID: "Y", Title: "Task Y", Dependencies: models.Dependencies{"X"}},
	}

	err := FindDependencyCycle(tasks)
	if err == nil {
		t.Fatal("FindDependencyCycle() should report the X <-> Y loop, got nil")
	}
	if got := err.Path; len(got) != 3 || got[0] != got[len(got)-1] {
		t.Errorf("unexpected cycle path %v", got)
	}
}

func TestFindDependencyCycle_IgnoresUnknownAndAnonymous(t *testing.T) {
	tasks := []models.Task{
		{Title: "no id", Dependencies: models.Dependencies{"A"}},
		{ID: "A", Title: "Task A", Dependencies: models.Dependencies{"external-1"}},
	}

	if err := FindDependencyCycle(tasks); err != nil {
		t.Errorf("unexpected cycle: %v", err)
	}
}

func TestFindDependencyCycle_SelfLoop(t *testing.T) {
	tasks := []models.Task{
		{ID: "A", Title: "Task A", Dependencies: models.Dependencies{"A"}},
	}

	err := FindDependencyCycle(tasks)
	if err == nil {
		t.Fatal("expected self-dependency to be reported")
	}
	if err.Error() != "circular dependency: [A A]" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFindDependencyCycle_NumericIDs(t *testing.T) {
	tasks, err := Validate([]byte(`[
		{"id":1,"title":"One","due_date":"2025-01-01","estimated_hours":1,"importance":5,"dependencies":[2]},
		{"id":2,"title":"Two","due_date":"2025-01-01","estimated_hours":1,"importance":5,"dependencies":"1"}
	]`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cycle := FindDependencyCycle(tasks); cycle == nil {
		t.Fatal("FindDependencyCycle() should match numeric ids against dependencies, got nil")
	}
}
