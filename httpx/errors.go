package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Chandima0406/NovaScript/log"
)

// Message writes the JSON error body every endpoint shares.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": msg})
}

// Will log an error, and send a 500 with a generic message
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	Message(w, r, http.StatusInternalServerError, "Server Error")
}

// Will log a debug message, and send a 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	Message(w, r, http.StatusNotFound, "Not found")
}

// Will log an error code and message at the given level,
// and send a response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	Message(w, r, status, errMsg)
}
