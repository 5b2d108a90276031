package store

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VinayakFrontend/task-manager-app/models"
)

func TestMemoryUserStoreEmailUniqueness(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Create(ctx, models.User{Name: "A", Email: "a@example.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err = s.Create(ctx, models.User{Name: "B", Email: "a@example.com", Role: models.RoleUser})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestMemoryUserStoreUpdateEmailUniqueness(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	a, err := s.Create(ctx, models.User{Name: "A", Email: "a@example.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := s.Create(ctx, models.User{Name: "B", Email: "b@example.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if _, err := s.Update(ctx, b.ID, "B", a.Email, models.RoleUser); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}

	// An update that keeps the user's own email is fine.
	u, err := s.Update(ctx, b.ID, "Bee", b.Email, models.RoleAdmin)
	if err != nil {
		t.Fatalf("update with own email: %v", err)
	}
	if u.Name != "Bee" || u.Role != models.RoleAdmin {
		t.Errorf("updated = %+v", u)
	}
}

func TestMemoryUserStoreNotFound(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	id := primitive.NewObjectID()

	if _, err := s.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByEmail(ctx, "none@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail err = %v, want ErrNotFound", err)
	}
	if _, err := s.Update(ctx, id, "X", "x@example.com", models.RoleUser); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryTaskStoreListOrder(t *testing.T) {
	s := NewMemoryTaskStore()
	ctx := context.Background()
	assignee := primitive.NewObjectID()

	for _, title := range []string{"one", "two", "three"} {
		if _, err := s.Create(ctx, models.Task{Title: title, AssignedTo: assignee}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, w)
		}
	}
}

func TestMemoryTaskStoreAppendComment(t *testing.T) {
	s := NewMemoryTaskStore()
	ctx := context.Background()

	task, err := s.Create(ctx, models.Task{Title: "t", AssignedTo: primitive.NewObjectID()})
	if err != nil {
		t.Fatal(err)
	}

	for _, text := range []string{"a", "b"} {
		if _, err := s.AppendComment(ctx, task.ID, models.Comment{Text: text}); err != nil {
			t.Fatalf("append %q: %v", text, err)
		}
	}

	got, err := s.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Comments) != 2 || got.Comments[0].Text != "a" || got.Comments[1].Text != "b" {
		t.Errorf("comments = %+v", got.Comments)
	}

	if _, err := s.AppendComment(ctx, primitive.NewObjectID(), models.Comment{Text: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryTaskStoreSetStatus(t *testing.T) {
	s := NewMemoryTaskStore()
	ctx := context.Background()

	task, err := s.Create(ctx, models.Task{Title: "t", AssignedTo: primitive.NewObjectID(), Status: models.StatusPending})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.SetStatus(ctx, task.ID, models.StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q", updated.Status)
	}

	if _, err := s.SetStatus(ctx, primitive.NewObjectID(), models.StatusCompleted); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
