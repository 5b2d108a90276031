package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VinayakFrontend/task-manager-app/models"
)

var (
	// ErrNotFound is returned when a referenced id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a write would duplicate another user's email.
	ErrEmailTaken = errors.New("email already taken")
)

// UserStore is the persistence interface for user records.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, name, email string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TaskStore is the persistence interface for task records. SetStatus and
// AppendComment are single-document atomic mutations.
type TaskStore interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) (*models.Task, error)
	AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Task, error)
	Replace(ctx context.Context, id primitive.ObjectID, title, description string, assignedTo primitive.ObjectID) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
