package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/httpx"
	"github.com/Chandima0406/NovaScript/log"
	"github.com/Chandima0406/NovaScript/routes/middlewares"
)

var validate = validator.New()

type registerRequest struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

func Register(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "register.parse_body", "Invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "register.validate", "Invalid registration data: %s", err)
			return
		}
		if req.Password != req.ConfirmPassword {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "register.password_mismatch", "Passwords do not match")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			httpx.LogInternalError(w, r, "register.hash", err)
			return
		}

		userId := uuid.Must(uuid.NewV4()).String()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO user (id, full_name, email, phone, password_hash, role, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userId,
			req.FullName,
			req.Email,
			req.Phone,
			string(hash),
			req.Role,
			time.Now(),
		)
		if err != nil {
			var sqlErr sqlite3.Error
			if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "register.duplicate_email", "User already exists with this email")
				return
			}
			httpx.LogInternalError(w, r, "db.insert_user", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]string{"message": "User created"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "login.parse_body", "Invalid request body")
			return
		}

		var userId, role string
		var hash []byte
		err = app.QueryRowContext(r.Context(), `
			SELECT id, role, password_hash FROM user WHERE email = ?`,
			req.Email,
		).Scan(&userId, &role, &hash)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil) {
			httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "login.credentials", "Wrong email or password")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_user", err)
			return
		}

		claims := map[string]any{"id": userId, "role": role}
		jwtauth.SetIssuedNow(claims)
		jwtauth.SetExpiryIn(claims, app.TokenTTL)
		_, token, err := app.TokenAuth.Encode(claims)
		if err != nil {
			httpx.LogInternalError(w, r, "login.sign_token", err)
			return
		}

		render.JSON(w, r, map[string]string{"token": token})
	}
}

func GetProfile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middlewares.UserID(r)

		var fullName, email, phone, role string
		err := app.QueryRowContext(r.Context(), `
			SELECT full_name, email, phone, role FROM user WHERE id = ?`,
			userId,
		).Scan(&fullName, &email, &phone, &role)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogStatusMsg(w, r, http.StatusNotFound, log.DebugLevel, "get_user", "User not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_user", err)
			return
		}

		render.JSON(w, r, map[string]string{
			"id":        userId,
			"full_name": fullName,
			"email":     email,
			"phone":     phone,
			"role":      role,
		})
	}
}
