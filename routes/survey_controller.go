package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/httpx"
	"github.com/Chandima0406/NovaScript/log"
	"github.com/Chandima0406/NovaScript/model"
	"github.com/Chandima0406/NovaScript/routes/middlewares"
	"github.com/Chandima0406/NovaScript/survey"
)

type createSurveyRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Role        string           `json:"role"`
	Questions   []model.Question `json:"questions"`
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSurveyRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "create_survey.parse_body", "Invalid request body")
			return
		}

		if req.Title == "" || req.Description == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "create_survey.validate", "Title and description are required")
			return
		}
		questions, err := survey.NormalizeQuestions(req.Questions)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "create_survey.questions", "%s", err)
			return
		}

		userId := middlewares.UserID(r)

		// creator {name, role} is a snapshot, not a live reference
		var creatorName, creatorRole string
		err = app.QueryRowContext(r.Context(), `
			SELECT full_name, role FROM user WHERE id = ?`,
			userId,
		).Scan(&creatorName, &creatorRole)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_creator", err)
			return
		}
		if req.Role != "" {
			creatorRole = req.Role
		}

		questionsJson, err := json.Marshal(questions)
		if err != nil {
			httpx.LogInternalError(w, r, "create_survey.marshal_questions", err)
			return
		}

		s := model.Survey{
			ID:          uuid.Must(uuid.NewV4()).String(),
			Title:       req.Title,
			Description: req.Description,
			Creator:     model.Creator{Name: creatorName, Role: creatorRole},
			OwnerID:     userId,
			Questions:   questions,
			CreatedAt:   time.Now(),
		}
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO survey (id, owner_id, title, description, creator_name, creator_role, questions, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID,
			s.OwnerID,
			s.Title,
			s.Description,
			s.Creator.Name,
			s.Creator.Role,
			string(questionsJson),
			s.CreatedAt,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, s)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := querySurveys(r, app, `
			SELECT id, owner_id, title, description, creator_name, creator_role, questions, created_at
			FROM survey
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}

		render.JSON(w, r, s)
	}
}

func UserSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := querySurveys(r, app, `
			SELECT id, owner_id, title, description, creator_name, creator_role, questions, created_at
			FROM survey
			WHERE owner_id = ?
			ORDER BY created_at DESC`,
			middlewares.UserID(r))
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_user_surveys", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

func AnsweredSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := querySurveys(r, app, `
			SELECT s.id, s.owner_id, s.title, s.description, s.creator_name, s.creator_role, s.questions, s.created_at
			FROM survey s
			INNER JOIN survey_response sr ON (s.id = sr.survey_id)
			WHERE sr.user_id = ?
			ORDER BY sr.submitted_at DESC`,
			middlewares.UserID(r))
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_answered_surveys", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

type updateSurveyRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Role        *string           `json:"role"`
	Questions   *[]model.Question `json:"questions"`
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		var req updateSurveyRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_survey.parse_body", "Invalid request body")
			return
		}

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "update_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}
		if s.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "update_survey.owner", "Not authorized to update this survey")
			return
		}

		if req.Title != nil {
			s.Title = *req.Title
		}
		if req.Description != nil {
			s.Description = *req.Description
		}
		if req.Role != nil {
			s.Creator.Role = *req.Role
		}
		if s.Title == "" || s.Description == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_survey.validate", "Title and description are required")
			return
		}

		// a missing questions field leaves the stored questions untouched
		if req.Questions != nil {
			s.Questions, err = survey.NormalizeQuestions(*req.Questions)
			if err != nil {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "update_survey.questions", "%s", err)
				return
			}
		}

		questionsJson, err := json.Marshal(s.Questions)
		if err != nil {
			httpx.LogInternalError(w, r, "update_survey.marshal_questions", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			UPDATE survey
			SET title = ?,
				description = ?,
				creator_role = ?,
				questions = ?
			WHERE id = ?`,
			s.Title,
			s.Description,
			s.Creator.Role,
			string(questionsJson),
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_survey", err)
			return
		}

		render.JSON(w, r, s)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "delete_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}
		if s.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "delete_survey.owner", "Not authorized to delete this survey")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		// deleting a survey takes all of its responses with it
		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM survey_response
			WHERE survey_id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey.responses", err)
			return
		}

		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM survey WHERE id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey.commit", err)
			return
		}

		render.JSON(w, r, map[string]string{"message": "Survey deleted"})
	}
}

type submitResponseRequest struct {
	Responses map[string]any `json:"responses"`
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")
		userId := middlewares.UserID(r)

		var req submitResponseRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "submit_response.parse_body", "Invalid request body")
			return
		}

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "submit_response", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}

		// friendly pre-check; the UNIQUE constraint below is authoritative
		var duplicate bool
		err = app.QueryRowContext(r.Context(), `
			SELECT 1 FROM survey_response
			WHERE survey_id = ?
				AND user_id = ?`,
			surveyId,
			userId,
		).Scan(&duplicate)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, r, "db.get_response", err)
			return
		}
		if duplicate {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "submit_response.duplicate", "%s", survey.ErrDuplicateResponse)
			return
		}

		err = survey.ValidateAnswers(s.Questions, req.Responses)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "submit_response.validate", "%s", err)
			return
		}

		answersJson, err := json.Marshal(req.Responses)
		if err != nil {
			httpx.LogInternalError(w, r, "submit_response.marshal_answers", err)
			return
		}

		resp := model.SurveyResponse{
			ID:          uuid.Must(uuid.NewV4()).String(),
			SurveyID:    surveyId,
			UserID:      userId,
			Answers:     req.Responses,
			SubmittedAt: time.Now(),
		}
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO survey_response (id, survey_id, user_id, answers, submitted_at)
			VALUES (?, ?, ?, ?, ?)`,
			resp.ID,
			resp.SurveyID,
			resp.UserID,
			string(answersJson),
			resp.SubmittedAt,
		)
		if err != nil {
			// two concurrent submissions: the second insert loses here
			var sqlErr sqlite3.Error
			if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "submit_response.duplicate", "%s", survey.ErrDuplicateResponse)
				return
			}
			httpx.LogInternalError(w, r, "db.insert_response", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_responses", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}
		if s.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "get_responses.owner", "Not authorized to view these responses")
			return
		}

		responses, err := loadResponses(r, app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}

func GetSurveyAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, err := loadSurvey(r, app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_analytics", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}
		if s.OwnerID != middlewares.UserID(r) {
			httpx.LogStatusMsg(w, r, http.StatusForbidden, log.DebugLevel, "get_analytics.owner", "Not authorized to view these analytics")
			return
		}

		responses, err := loadResponses(r, app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_responses", err)
			return
		}

		render.JSON(w, r, survey.Aggregate(s.Questions, responses))
	}
}

func loadSurvey(r *http.Request, app app.App, surveyId string) (s model.Survey, err error) {
	var questionsJson string
	err = app.QueryRowContext(r.Context(), `
		SELECT id, owner_id, title, description, creator_name, creator_role, questions, created_at
		FROM survey
		WHERE id = ?`,
		surveyId,
	).Scan(
		&s.ID, &s.OwnerID, &s.Title, &s.Description,
		&s.Creator.Name, &s.Creator.Role, &questionsJson, &s.CreatedAt,
	)
	if err != nil {
		return
	}

	err = json.Unmarshal([]byte(questionsJson), &s.Questions)
	return
}

func querySurveys(r *http.Request, app app.App, query string, args ...any) ([]model.Survey, error) {
	rows, err := app.QueryContext(r.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		s := model.Survey{}
		var questionsJson string
		err = rows.Scan(
			&s.ID, &s.OwnerID, &s.Title, &s.Description,
			&s.Creator.Name, &s.Creator.Role, &questionsJson, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		err = json.Unmarshal([]byte(questionsJson), &s.Questions)
		if err != nil {
			return nil, err
		}

		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func loadResponses(r *http.Request, app app.App, surveyId string) ([]model.SurveyResponse, error) {
	rows, err := app.QueryContext(r.Context(), `
		SELECT id, survey_id, user_id, answers, submitted_at
		FROM survey_response
		WHERE survey_id = ?`,
		surveyId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.SurveyResponse{}
	for rows.Next() {
		resp := model.SurveyResponse{}
		var answersJson string
		err = rows.Scan(&resp.ID, &resp.SurveyID, &resp.UserID, &answersJson, &resp.SubmittedAt)
		if err != nil {
			return nil, err
		}

		err = json.Unmarshal([]byte(answersJson), &resp.Answers)
		if err != nil {
			return nil, err
		}

		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
