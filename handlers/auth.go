package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/store"
	"github.com/VinayakFrontend/task-manager-app/utils"
)

// AuthHandler serves signup, login and the admin-only user directory.
type AuthHandler struct {
	Users store.UserStore
}

type signupReq struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account and returns a session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.ResponseWithError(w, http.StatusBadRequest, "Please include all fields")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
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

	user, err := h.Users.Create(r.Context(), models.User{
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

	token, err := utils.GenerateJwt(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("signing token: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"token": token})
}

// Login verifies credentials and returns a fresh session token. Unknown
// email and wrong password produce the same reply.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.ResponseWithError(w, http.StatusBadRequest, "Please include all fields")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("finding user: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJwt(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("signing token: %v", err)
		utils.ResponseWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"token": token})
}
