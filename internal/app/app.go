// Package app provides the core business logic of the clothing exchange.
// It handles user authentication, the item registry and its moderation gate, and the swap engine that
// drives swap requests through their lifecycle and applies the points and item side effects on completion.
// The package works against the storage.Storage interface and reports rejected requests as *Error values.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rewear/internal/models"
	"rewear/internal/pkg/auth"
	"rewear/internal/pkg/logger"
	"rewear/internal/pkg/metrics"
	"rewear/internal/storage"

	"github.com/go-playground/validator/v10"
)

// DirectCompletionPolicy decides what completing a direct swap does to the two items.
type DirectCompletionPolicy string

const (
	// DirectCompletionNone completes a direct swap without touching either item.
	DirectCompletionNone DirectCompletionPolicy = "none"
	// DirectCompletionExchange marks both items as swapped and no longer available.
	DirectCompletionExchange DirectCompletionPolicy = "exchange"
)

// ParseDirectCompletionPolicy parses a policy name. An empty name selects DirectCompletionNone.
func ParseDirectCompletionPolicy(name string) (DirectCompletionPolicy, error) {
	switch DirectCompletionPolicy(name) {
	case "", DirectCompletionNone:
		return DirectCompletionNone, nil
	case DirectCompletionExchange:
		return DirectCompletionExchange, nil
	}
	return "", fmt.Errorf("app: unknown direct swap completion policy %q", name)
}

// Settings tunes the business rules of an App.
type Settings struct {
	StartingPoints   int                    // Points granted to a newly registered user.
	DirectCompletion DirectCompletionPolicy // Item effects of completing a direct swap.
	Metrics          *metrics.Metrics       // Optional; nil disables metrics.
	Now              func() time.Time       // Clock used for lifecycle timestamps; defaults to time.Now.
}

// App encapsulates the application logic and dependencies required to process requests.
type App struct {
	db       storage.Storage
	log      *logger.Logger
	validate *validator.Validate
	settings Settings
}

// NewApp creates and returns a new instance of App with the provided storage, logger and settings.
func NewApp(db storage.Storage, log *logger.Logger, settings Settings) *App {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.DirectCompletion == "" {
		settings.DirectCompletion = DirectCompletionNone
	}
	return &App{db: db, log: log, validate: newValidator(), settings: settings}
}

func (app *App) now() time.Time {
	return app.settings.Now().UTC()
}

// ProcessAuth handles user authentication by verifying credentials and generating a token.
// If the user does not exist, it creates a new user with the starting points balance.
func (app *App) ProcessAuth(ctx context.Context, req models.AuthRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", ErrMissingUsernameOrPassword
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
	}

	user, err := app.db.CheckUser(ctx, user)
	if err != nil {
		return "", err
	}

	if user.ID == 0 {
		user.Points = app.settings.StartingPoints
		user, err = app.db.CreateUser(ctx, user)
		if err != nil {
			return "", err
		}
		app.log.Sugar().Infof("Registered user %q with id %d", user.Username, user.ID)
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ProcessInfo retrieves the user's points balance, listing count and points history.
func (app *App) ProcessInfo(ctx context.Context, userID int32) (*models.InfoResponse, error) {
	infoResponse, err := app.db.GetInfo(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return infoResponse, nil
}
