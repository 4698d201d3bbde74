package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
)

func newTodoService(t *testing.T) TodoService {
	t.Helper()
	return NewTodoService(newFakeRepo(), testLogger(), testValidator())
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	svc := newTodoService(t)

	task, err := svc.Create(context.Background(), 1, &CreateTaskRequest{Title: "Call parents of 22CSE101"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority = %s, want medium default", task.Priority)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
}

func TestTasksAreOwnerScoped(t *testing.T) {
	svc := newTodoService(t)

	task, err := svc.Create(context.Background(), 1, &CreateTaskRequest{Title: "Prepare semester report"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Another user sees nothing and cannot touch the task.
	list, err := svc.List(context.Background(), 2, repositories.TodoFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("foreign list total = %d, want 0", list.Total)
	}

	done := true
	if _, err := svc.Update(context.Background(), task.ID, 2, &UpdateTaskRequest{Completed: &done}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), task.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}

	// The owner still can.
	updated, err := svc.Update(context.Background(), task.ID, 1, &UpdateTaskRequest{Completed: &done})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if !updated.Completed {
		t.Error("task not marked completed")
	}
	if err := svc.Delete(context.Background(), task.ID, 1); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestListTasksFiltersCompleted(t *testing.T) {
	svc := newTodoService(t)

	open, err := svc.Create(context.Background(), 1, &CreateTaskRequest{Title: "Review attendance", Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	doneTask, err := svc.Create(context.Background(), 1, &CreateTaskRequest{Title: "Book lab slot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := true
	if _, err := svc.Update(context.Background(), doneTask.ID, 1, &UpdateTaskRequest{Completed: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	pending := false
	list, err := svc.List(context.Background(), 1, repositories.TodoFilters{Completed: &pending})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || list.Tasks[0].ID != open.ID {
		t.Errorf("pending list = %+v, want only task %d", list.Tasks, open.ID)
	}
}

func TestDeleteMissingTask(t *testing.T) {
	svc := newTodoService(t)

	if err := svc.Delete(context.Background(), 42, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
