package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/VinayakFrontend/task-manager-app/config"
	"github.com/VinayakFrontend/task-manager-app/handlers"
	"github.com/VinayakFrontend/task-manager-app/store"
)

func main() {
	godotenv.Load()

	db := config.ConnectDB()

	auth := &handlers.AuthHandler{Users: store.NewMongoUserStore(db)}
	tasks := &handlers.TaskHandler{
		Tasks: store.NewMongoTaskStore(db),
		Users: store.NewMongoUserStore(db),
	}

	router := handlers.Router(auth, tasks)

	// Allow the browser client in local development.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "x-auth-token"},
		AllowCredentials: true,
	})

	port := config.Getenv("PORT", "5000")
	log.Printf("server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(router)))
}
