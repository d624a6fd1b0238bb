package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/httpx"
	"github.com/Chandima0406/NovaScript/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	root.Mount("/api", apiRouter(app))

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, r, http.StatusNotFound, "API endpoint not found")
	})

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Message(w, r, http.StatusNotFound, "API endpoint not found")
	})

	authenticated := middlewares.Authenticated(app.TokenAuth)

	api.Post("/register", Register(app))
	api.Post("/login", Login(app))
	api.With(authenticated).Get("/user", GetProfile(app))

	api.Route("/projects", func(r chi.Router) {
		r.Get("/", ListProjects(app))
		r.Get("/{id}", GetProjectById(app))
		r.Get("/{id}/pdf", DownloadProjectPDF(app))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", PublishProject(app))
			r.Put("/{id}", UpdateProject(app))
			r.Delete("/{id}", DeleteProject(app))
		})
	})

	api.Route("/surveys", func(r chi.Router) {
		r.Get("/", ListSurveys(app))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", CreateSurvey(app))
			r.Get("/user", UserSurveys(app))
			r.Get("/user/answered", AnsweredSurveys(app))
			r.Put("/{id}", UpdateSurvey(app))
			r.Delete("/{id}", DeleteSurvey(app))
			r.Post("/{id}/respond", SubmitResponse(app))
			r.Get("/{id}/responses", GetSurveyResponses(app))
			r.Get("/{id}/analytics", GetSurveyAnalytics(app))
		})

		r.Get("/{id}", GetSurveyById(app))
	})

	return api
}
