package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/store"
	"github.com/VinayakFrontend/task-manager-app/utils"
)

type createUserReq struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type updateUserReq struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// ListUsers returns every user without the password hash.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		log.Printf("listing users: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	infos := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, u.Info())
	}
	utils.ResponseWithJson(w, http.StatusOK, infos)
}

// CreateUser creates an account on a user's behalf. Unlike Signup it does
// not issue a token.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		utils.ResponseWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !models.ValidRole(req.Role) {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("hashing password: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = h.Users.Create(r.Context(), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	})
	if errors.Is(err, store.ErrEmailTaken) {
		utils.ResponseWithError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Printf("creating user: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusCreated, map[string]string{"msg": "User created"})
}

// UpdateUser replaces a user's name, email and role. The password is not
// updatable through this path.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var req updateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if !models.ValidRole(req.Role) {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.Users.Update(r.Context(), id, req.Name, req.Email, req.Role)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if errors.Is(err, store.ErrEmailTaken) {
		utils.ResponseWithError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Printf("updating user: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, user.Info())
}

// DeleteUser removes a user record. Tasks assigned to the user are not
// cascaded; their assignee reference goes dangling.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.ResponseWithError(w, http.StatusNotFound, "User not found")
		return
	}

	err = h.Users.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("deleting user: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"msg": "User deleted"})
}
