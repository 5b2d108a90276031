package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/VinayakFrontend/task-manager-app/middleware"
)

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}

// Router wires every route. Auth-gated routes live on a subrouter behind
// the token middleware; admin-only ones additionally go through
// middleware.RequireAdmin.
func Router(auth *AuthHandler, tasks *TaskHandler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", Health).Methods("GET")
	api.HandleFunc("/auth/signup", auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")

	private := api.NewRoute().Subrouter()
	private.Use(middleware.Auth)

	private.HandleFunc("/auth/users", middleware.RequireAdmin(auth.ListUsers)).Methods("GET")
	private.HandleFunc("/auth/users", middleware.RequireAdmin(auth.CreateUser)).Methods("POST")
	private.HandleFunc("/auth/users/{id}", middleware.RequireAdmin(auth.UpdateUser)).Methods("PUT")
	private.HandleFunc("/auth/users/{id}", middleware.RequireAdmin(auth.DeleteUser)).Methods("DELETE")

	private.HandleFunc("/tasks", middleware.RequireAdmin(tasks.Create)).Methods("POST")
	private.HandleFunc("/tasks", tasks.List).Methods("GET")
	private.HandleFunc("/tasks/{id}/complete", tasks.Complete).Methods("PUT")
	private.HandleFunc("/tasks/{id}/comment", tasks.Comment).Methods("PUT")
	private.HandleFunc("/tasks/{id}", middleware.RequireAdmin(tasks.Update)).Methods("PUT")
	private.HandleFunc("/tasks/{id}", middleware.RequireAdmin(tasks.Delete)).Methods("DELETE")

	return r
}
