// Package storage provides primitives for connecting to and interacting with data storage systems.
// It defines the Storage interface along with a PostgreSQL implementation that manages users and their
// points ledger, clothing listings, and swap requests, including the transactional completion of a swap.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rewear/internal/models"
	"rewear/internal/pkg/logger"
	"rewear/internal/pkg/security"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Errors reported by the storage layer independently of the underlying driver.
var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("storage: record not found")
	// ErrStaleState indicates that a compare-and-set update found the record in a different state than expected.
	ErrStaleState = errors.New("storage: record state changed concurrently")
	// ErrInsufficientPoints indicates that a debit would have made a balance negative.
	ErrInsufficientPoints = errors.New("storage: insufficient points")
	// ErrItemUnavailable indicates that an item was no longer available when it was about to be handed over.
	ErrItemUnavailable = errors.New("storage: item no longer available")
	// ErrDuplicateOpenSwap indicates that the requester already has an open swap for the item.
	ErrDuplicateOpenSwap = errors.New("storage: open swap already exists")
)

const (
	createUserQuery       = `INSERT INTO content.users (username, password_hash, points) VALUES ($1, $2, $3) RETURNING id;`
	checkUserQuery        = `SELECT id, password_hash, points, is_admin FROM content.users WHERE username = $1;`
	getUserQuery          = `SELECT username, points, is_admin FROM content.users WHERE id = $1;`
	updateUserPointsQuery = `UPDATE content.users SET points = points + $1, updated_at = NOW() WHERE id = $2 AND points + $1 >= 0;`
	insertLedgerQuery     = `INSERT INTO content.points_ledger (user_id, swap_id, delta, reason) VALUES ($1, $2, $3, $4);`
	getLedgerQuery        = `SELECT id, user_id, swap_id, delta, reason, created_at FROM content.points_ledger WHERE user_id = $1 ORDER BY created_at DESC, id DESC;`
	countUserItemsQuery   = `SELECT COUNT(*) FROM content.items WHERE uploader_id = $1;`
)

const dashboardQuery = `SELECT
	(SELECT COUNT(*) FROM content.users),
	(SELECT COUNT(*) FROM content.items),
	(SELECT COUNT(*) FROM content.items WHERE status = 'pending'),
	(SELECT COUNT(*) FROM content.swaps),
	(SELECT COUNT(*) FROM content.swaps WHERE status = 'completed');`

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks rewear/internal/storage Storage

// Storage defines the methods required for data storage operations.
type Storage interface {
	// Close closes the database connection.
	Close()

	// Authentication and user methods.
	CheckUser(ctx context.Context, user *models.User) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, userID int32) (*models.User, error)

	// Item registry methods.
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	GetItem(ctx context.Context, itemID int32) (*models.Item, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	ModerateItem(ctx context.Context, moderation models.ItemModeration) (*models.Item, error)

	// Swap methods.
	CreateSwap(ctx context.Context, swap *models.Swap) (*models.Swap, error)
	GetSwap(ctx context.Context, swapID int32) (*models.Swap, error)
	HasOpenSwap(ctx context.Context, requesterID, itemID int32) (bool, error)
	ListSwaps(ctx context.Context, filter models.SwapFilter) ([]models.Swap, error)
	TransitionSwap(ctx context.Context, transition models.SwapTransition) (*models.Swap, error)
	CompleteSwap(ctx context.Context, completion models.SwapCompletion) (*models.Swap, error)

	// Aggregated views.
	GetInfo(ctx context.Context, userID int32) (*models.InfoResponse, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// PostgreSQL implements the Storage interface using a PostgreSQL database.
type PostgreSQL struct {
	db  *sql.DB        // Connection to the database.
	log *logger.Logger // Logger for recording events and errors.
}

// NewPostgreSQL creates a new PostgreSQL instance with the provided connection string and logger.
// It opens the connection and pings the database to ensure connectivity.
func NewPostgreSQL(configDBString string, l *logger.Logger) (*PostgreSQL, error) {
	db, err := sql.Open("pgx", configDBString)
	if err != nil {
		l.Sugar().Errorf("Failed to open a database: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	const defaultTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		l.Sugar().Errorf("Database ping failed: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	return &PostgreSQL{db: db, log: l}, nil
}

// Close closes the database connection if it is open.
func (postgresql *PostgreSQL) Close() {
	if postgresql.db != nil {
		postgresql.db.Close()
	}
}

// Migrate applies the schema migrations on the underlying connection.
func (postgresql *PostgreSQL) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, postgresql.db); err != nil {
		postgresql.log.Sugar().Errorf("Failed to migrate the database: %s", err)
		return err
	}
	return nil
}

// mapError translates constraint violations that carry business meaning into storage errors.
func mapError(err error) error {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return err
	}
	switch {
	case pgError.Code == pgerrcode.UniqueViolation && pgError.ConstraintName == swapsOpenPairIndex:
		return ErrDuplicateOpenSwap
	case pgError.Code == pgerrcode.CheckViolation && pgError.ConstraintName == usersPointsCheck:
		return ErrInsufficientPoints
	}
	return err
}

// CheckUser verifies the user's credentials by retrieving the user's ID and encrypted password,
// then checking the provided password against the stored hash.
// An unknown username yields a user with a zero ID and no error.
func (postgresql *PostgreSQL) CheckUser(ctx context.Context, user *models.User) (*models.User, error) {
	var encryptedPassword string

	err := postgresql.db.QueryRowContext(ctx, checkUserQuery, user.Username).Scan(&user.ID, &encryptedPassword, &user.Points, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return user, nil
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query checkUserQuery: %s", err)
		return user, err
	}

	err = security.CheckPassword(encryptedPassword, user.Password)
	if err != nil {
		postgresql.log.Sugar().Errorf("Password check failed: %s", err)
		return user, err
	}

	return user, nil
}

// CreateUser registers a new user with the starting balance in user.Points.
// A non-zero starting balance is recorded as a signup bonus in the points ledger within the same transaction.
func (postgresql *PostgreSQL) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	encryptedPassword, err := security.HashPassword(user.Password)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to hash the password: %s", err)
		return user, err
	}

	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return user, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, createUserQuery, user.Username, encryptedPassword, user.Points).Scan(&user.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createUserQuery: %s", err)
		return user, err
	}

	if user.Points > 0 {
		if err = postgresql.InsertLedgerEntry(ctx, tx, user.ID, nil, user.Points, models.LedgerReasonSignupBonus); err != nil {
			return user, err
		}
	}

	if err = tx.Commit(); err != nil {
		return user, err
	}

	return user, nil
}

// GetUser returns the user's public profile and current points balance.
func (postgresql *PostgreSQL) GetUser(ctx context.Context, userID int32) (*models.User, error) {
	user := &models.User{ID: userID}

	err := postgresql.db.QueryRowContext(ctx, getUserQuery, userID).Scan(&user.Username, &user.Points, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getUserQuery: %s", err)
		return nil, err
	}

	return user, nil
}

// UpdateUserPoints adds delta to the user's balance and appends the matching ledger entry.
// The update is guarded so that the balance can never drop below zero; a debit that would do so
// fails with ErrInsufficientPoints and changes nothing.
func (postgresql *PostgreSQL) UpdateUserPoints(ctx context.Context, tx *sql.Tx, userID int32, delta int, swapID *int32, reason string) error {
	result, err := tx.ExecContext(ctx, updateUserPointsQuery, delta, userID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateUserPointsQuery: %s", err)
		return mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updateUserPointsQuery: %s", err)
		return err
	}
	if rows == 0 {
		if delta < 0 {
			return ErrInsufficientPoints
		}
		return ErrNotFound
	}

	return postgresql.InsertLedgerEntry(ctx, tx, userID, swapID, delta, reason)
}

// InsertLedgerEntry appends one row to the points ledger.
func (postgresql *PostgreSQL) InsertLedgerEntry(ctx context.Context, tx *sql.Tx, userID int32, swapID *int32, delta int, reason string) error {
	var swap sql.NullInt32
	if swapID != nil {
		swap = sql.NullInt32{Int32: *swapID, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, insertLedgerQuery, userID, swap, delta, reason); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query insertLedgerQuery: %s", err)
		return err
	}
	return nil
}

// GetLedger returns the user's ledger entries, newest first.
func (postgresql *PostgreSQL) GetLedger(ctx context.Context, tx *sql.Tx, userID int32) ([]models.LedgerEntry, error) {
	rows, err := tx.QueryContext(ctx, getLedgerQuery, userID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getLedgerQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	const initialLedgerCapacity = 10
	entries := make([]models.LedgerEntry, 0, initialLedgerCapacity)
	for rows.Next() {
		var entry models.LedgerEntry
		var swapID sql.NullInt32
		if err := rows.Scan(&entry.ID, &entry.UserID, &swapID, &entry.Delta, &entry.Reason, &entry.CreatedAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan ledger entry in GetLedger method: %s", err)
			return nil, err
		}
		if swapID.Valid {
			id := swapID.Int32
			entry.SwapID = &id
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in GetLedger method: %s", err)
		return entries, err
	}

	return entries, nil
}

// GetInfo aggregates the user's balance, number of listings and points history in one read transaction.
func (postgresql *PostgreSQL) GetInfo(ctx context.Context, userID int32) (*models.InfoResponse, error) {
	infoResponse := &models.InfoResponse{}

	tx, err := postgresql.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return infoResponse, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, getUserQuery, userID).Scan(&infoResponse.Username, &infoResponse.Points, new(bool))
	if errors.Is(err, sql.ErrNoRows) {
		return infoResponse, ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getUserQuery: %s", err)
		return infoResponse, err
	}

	if err = tx.QueryRowContext(ctx, countUserItemsQuery, userID).Scan(&infoResponse.ListedItems); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countUserItemsQuery: %s", err)
		return infoResponse, err
	}

	entries, err := postgresql.GetLedger(ctx, tx, userID)
	if err != nil {
		return infoResponse, err
	}

	history := &models.PointsHistory{
		Received: make([]models.LedgerEntry, 0, len(entries)),
		Spent:    make([]models.LedgerEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		if entry.Delta > 0 {
			history.Received = append(history.Received, entry)
		} else {
			history.Spent = append(history.Spent, entry)
		}
	}
	infoResponse.PointsHistory = history

	if err = tx.Commit(); err != nil {
		return infoResponse, err
	}

	return infoResponse, nil
}

// GetDashboardStats returns the moderation dashboard counters.
func (postgresql *PostgreSQL) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := postgresql.db.QueryRowContext(ctx, dashboardQuery).Scan(
		&stats.TotalUsers, &stats.TotalItems, &stats.PendingItems, &stats.TotalSwaps, &stats.CompletedSwaps)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query dashboardQuery: %s", err)
		return nil, err
	}

	return stats, nil
}
