package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VinayakFrontend/task-manager-app/middleware"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/store"
	"github.com/VinayakFrontend/task-manager-app/utils"
)

// TaskHandler serves task CRUD plus the complete and comment transitions.
type TaskHandler struct {
	Tasks store.TaskStore
	Users store.UserStore
}

type taskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
}

type commentReq struct {
	Comment struct {
		Text string `json:"text"`
	} `json:"comment"`
}

// Create inserts a new pending task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	assignee, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if req.Title == "" || req.AssignedTo == "" || err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Please include title & assignedTo")
		return
	}

	now := time.Now().UTC()
	task, err := h.Tasks.Create(r.Context(), models.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  assignee,
		Status:      models.StatusPending,
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		log.Printf("creating task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, h.resolve(r.Context(), task))
}

// List returns every task for admins, and only the caller's own tasks
// otherwise. Assignees are resolved for display.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var tasks []models.Task
	var err error
	if user.Role == models.RoleAdmin {
		tasks, err = h.Tasks.List(r.Context())
	} else {
		tasks, err = h.Tasks.ListByAssignee(r.Context(), user.ID)
	}
	if err != nil {
		log.Printf("listing tasks: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	views := make([]models.TaskView, 0, len(tasks))
	cache := map[primitive.ObjectID]*models.User{}
	for _, t := range tasks {
		assignee, ok := cache[t.AssignedTo]
		if !ok {
			assignee, _ = h.Users.GetByID(r.Context(), t.AssignedTo)
			cache[t.AssignedTo] = assignee
		}
		views = append(views, t.View(assignee))
	}
	utils.ResponseWithJson(w, http.StatusOK, views)
}

// Complete marks a task completed. Only the assigned user may do this;
// the check has no admin bypass. Completing an already completed task is a
// no-op.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.Tasks.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("finding task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, _ := middleware.UserFromContext(r.Context())
	if task.AssignedTo != user.ID {
		utils.ResponseWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	updated, err := h.Tasks.SetStatus(r.Context(), id, models.StatusCompleted)
	if err != nil {
		log.Printf("completing task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, h.resolve(r.Context(), *updated))
}

// Comment appends a comment to a task. Any authenticated caller may
// comment, assigned or not.
func (h *TaskHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req commentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	task, err := h.Tasks.AppendComment(r.Context(), id, models.Comment{
		Text:      req.Comment.Text,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("commenting on task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, h.resolve(r.Context(), *task))
}

// Update replaces a task's title, description and assignee.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req taskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	assignee, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if req.Title == "" || req.AssignedTo == "" || err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Please include title & assignedTo")
		return
	}

	task, err := h.Tasks.Replace(r.Context(), id, req.Title, req.Description, assignee)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("updating task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, h.resolve(r.Context(), *task))
}

// Delete removes a task and its embedded comments.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	err = h.Tasks.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("deleting task: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"msg": "Task deleted"})
}

func (h *TaskHandler) resolve(ctx context.Context, task models.Task) models.TaskView {
	assignee, _ := h.Users.GetByID(ctx, task.AssignedTo)
	return task.View(assignee)
}
