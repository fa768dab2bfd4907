// Package service contains HTTP handler implementations for the clothing exchange API endpoints.
// It orchestrates request parsing, calls the underlying business logic in the app package,
// translates error categories (including database-specific errors) into status codes, and writes JSON responses.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"rewear/internal/app"
	"rewear/internal/models"
	"rewear/internal/pkg/auth"
	"rewear/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const requestTimeout = 10 * time.Second

var errInvalidID = errors.New("invalid id")

// handlers aggregates dependencies needed by HTTP handlers,
// including the application business logic and logger.
type handlers struct {
	app *app.App
	log *logger.Logger
}

// newHandlers initializes a new handlers instance with the provided app and logger dependencies.
func newHandlers(app *app.App, l *logger.Logger) *handlers {
	return &handlers{app: app, log: l}
}

// authHandler handles user authentication requests.
// It reads the request body, unmarshals it into an AuthRequest,
// invokes the authentication process, and returns a JSON response with a token.
func (handlers *handlers) authHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var authRequest models.AuthRequest
	var authResponse models.AuthResponse

	if err := readJSON(req, &authRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var pgError *pgconn.PgError
	var err error
	authResponse.Token, err = handlers.app.ProcessAuth(ctx, authRequest)
	if err != nil {
		if ok := errors.As(err, &pgError); ok && pgError.Code == pgerrcode.UniqueViolation {
			writeErrorResponse(res, "user with provided name already exists", http.StatusUnauthorized)
			return
		}

		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			writeErrorResponse(res, "incorrect password", http.StatusUnauthorized)
			return
		}
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, authResponse)
}

// infoHandler retrieves user account information.
// It extracts the user ID from the context, calls the business logic to obtain user info,
// and returns the balance, listing count and points history in JSON format.
func (handlers *handlers) infoHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	info, err := handlers.app.ProcessInfo(ctx, userID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, info)
}

// writeAppError maps an error category of the app package onto an HTTP status.
// Anything uncategorised is an internal error.
func (handlers *handlers) writeAppError(res http.ResponseWriter, err error) {
	var appErr *app.Error
	if !errors.As(err, &appErr) {
		handlers.log.Sugar().Errorf("Request failed: %s", err)
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, app.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, app.ErrConflict):
		status = http.StatusConflict
	}
	writeErrorResponse(res, appErr.Reason, status)
}

// readJSON decodes the whole request body into v.
func readJSON(req *http.Request, v any) error {
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(requestBody, v)
}

// pathID parses the {id} URL parameter.
func pathID(req *http.Request) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return int32(id), nil
}

// queryInt parses an optional integer query parameter. Malformed values count as absent.
func queryInt(req *http.Request, name string) int {
	value, err := strconv.Atoi(req.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func writeJSON(res http.ResponseWriter, statusCode int, v any) {
	result, err := json.Marshal(v)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	res.Write(result)
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}
