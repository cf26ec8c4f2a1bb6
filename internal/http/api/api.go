// Package api assembles the students API router.
//
// Route table:
//
//	GET    /                → welcome message
//	GET    /students        → list all students
//	POST   /students        → create a new student
//	GET    /students/{id}   → get one student by ID
//	PUT    /students/{id}   → update a student
//	DELETE /students/{id}   → delete a student
package api

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aanand-mishra/students-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/students-roster/internal/http/middleware"
	"github.com/aanand-mishra/students-roster/internal/storage"
)

// NewRouter wires the handlers to storage and wraps them in the shared
// middleware. allowedOrigins are the browser origins CORS lets through.
func NewRouter(s storage.Storage, allowedOrigins []string, log *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", student.Root())
	router.HandleFunc("POST /students", student.New(s))
	router.HandleFunc("GET /students", student.GetList(s))
	router.HandleFunc("GET /students/{id}", student.GetByID(s))
	router.HandleFunc("PUT /students/{id}", student.Update(s))
	router.HandleFunc("DELETE /students/{id}", student.Delete(s))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	})

	var h http.Handler = router
	h = chimw.Recoverer(h)
	h = middleware.Logger(log)(h)
	h = middleware.RequestID(h)
	h = corsHandler(h)
	return h
}
