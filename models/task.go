package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

type Comment struct {
	Text      string              `bson:"text" json:"text"`
	Author    *primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description"`
	AssignedTo  primitive.ObjectID `bson:"assigned_to" json:"assignedTo"`
	Status      TaskStatus         `bson:"status" json:"status"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Assignee is the resolved {id, name, email} shown next to a task.
type Assignee struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// TaskView is a Task with its assignee resolved for display. Assignee is
// null when the referenced user no longer exists.
type TaskView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Assignee    *Assignee          `json:"assignedTo"`
	Status      TaskStatus         `json:"status"`
	Comments    []Comment          `json:"comments"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// View resolves t against the given user, which may be nil when the
// assignee was deleted.
func (t Task) View(assignee *User) TaskView {
	v := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Comments:    t.Comments,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if v.Comments == nil {
		v.Comments = []Comment{}
	}
	if assignee != nil {
		v.Assignee = &Assignee{ID: assignee.ID, Name: assignee.Name, Email: assignee.Email}
	}
	return v
}
