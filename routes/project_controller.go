package routes

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/httpx"
	"github.com/Chandima0406/NovaScript/log"
	"github.com/Chandima0406/NovaScript/model"
	"github.com/Chandima0406/NovaScript/routes/middlewares"
)

// uploads above this size are rejected before buffering
const maxUploadBytes = 32 << 20

func PublishProject(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseMultipartForm(maxUploadBytes)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "publish_project.parse_form", "Invalid upload")
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		if title == "" || description == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "publish_project.validate", "Title and description are required")
			return
		}

		var pdfName string
		var pdfData []byte
		file, header, err := r.FormFile("pdf")
		switch {
		case err == nil:
			defer file.Close()

			pdfData, err = io.ReadAll(file)
			if err != nil {
				httpx.LogInternalError(w, r, "publish_project.read_file", err)
				return
			}
			// trust the bytes, not the client's content type
			if !mimetype.Detect(pdfData).Is("application/pdf") {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "publish_project.sniff", "Uploaded file must be a PDF")
				return
			}
			pdfName = header.Filename
		case errors.Is(err, http.ErrMissingFile):
			// metadata-only project
		default:
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "publish_project.file", "Invalid upload")
			return
		}

		userId := middlewares.UserID(r)

		var authorName, authorRole string
		err = app.QueryRowContext(r.Context(), `
			SELECT full_name, role FROM user WHERE id = ?`,
			userId,
		).Scan(&authorName, &authorRole)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_author", err)
			return
		}

		p := model.Project{
			ID:          uuid.Must(uuid.NewV4()).String(),
			Title:       title,
			Description: description,
			Author:      model.Author{Name: authorName, Role: authorRole},
			OwnerID:     userId,
			PDFName:     pdfName,
			CreatedAt:   time.Now(),
		}
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO project (id, owner_id, title, description, author_name, author_role, pdf_name, pdf_data, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID,
			p.OwnerID,
			p.Title,
			p.Description,
			p.Author.Name,
			p.Author.Role,
			p.PDFName,
			pdfData,
			p.CreatedAt,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_project", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, p)
	}
}

func ListProjects(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, owner_id, title, description, author_name, author_role, pdf_name, created_at
			FROM project
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_projects", err)
			return
		}
		defer rows.Close()

		projects := []model.Project{}
		for rows.Next() {
			p := model.Project{}
			err = rows.Scan(
				&p.ID, &p.OwnerID, &p.Title, &p.Description,
				&p.Author.Name, &p.Author.Role, &p.PDFName, &p.CreatedAt,
			)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_projects.scan", err)
				return
			}
			projects = append(projects, p)
		}

		render.JSON(w, r, projects)
	}
}

func GetProjectById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectId := chi.URLParam(r, "id")

		p, err := loadProject(r, app, projectId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_project", projectId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_project", err)
			return
		}

		render.JSON(w, r, p)
	}
}

func DownloadProjectPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectId := chi.URLParam(r, "id")

		var pdfName string
		var pdfData []byte
		err := app.QueryRowContext(r.Context(), `
			SELECT pdf_name, pdf_data FROM project WHERE id = ?`,
			projectId,
		).Scan(&pdfName, &pdfData)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && len(pdfData) == 0) {
			httpx.LogNotFound(w, r, "get_project_pdf", projectId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_project_pdf", err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="`+pdfName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfData)))
		w.Write(pdfData)
	}
}

type updateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func UpdateProject(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectId := chi.URLParam(r, "id")

		var req updateProjectRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_project.parse_body", "Invalid request body")
			return
		}

		p, err := loadProject(r, app, projectId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "update_project", projectId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_project", err)
			return
		}
		if p.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "update_project.owner", "Not authorized to update this project")
			return
		}

		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if p.Title == "" || p.Description == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_project.validate", "Title and description are required")
			return
		}

		_, err = app.ExecContext(r.Context(), `
			UPDATE project
			SET title = ?,
				description = ?
			WHERE id = ?`,
			p.Title,
			p.Description,
			projectId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_project", err)
			return
		}

		render.JSON(w, r, p)
	}
}

func DeleteProject(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectId := chi.URLParam(r, "id")

		p, err := loadProject(r, app, projectId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "delete_project", projectId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_project", err)
			return
		}
		if p.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "delete_project.owner", "Not authorized to delete this project")
			return
		}

		_, err = app.ExecContext(r.Context(), `
			DELETE FROM project WHERE id = ?`,
			projectId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_project", err)
			return
		}

		render.JSON(w, r, map[string]string{"message": "Project deleted"})
	}
}

func loadProject(r *http.Request, app app.App, projectId string) (p model.Project, err error) {
	err = app.QueryRowContext(r.Context(), `
		SELECT id, owner_id, title, description, author_name, author_role, pdf_name, created_at
		FROM project
		WHERE id = ?`,
		projectId,
	).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.Author.Name, &p.Author.Role, &p.PDFName, &p.CreatedAt,
	)
	return
}
