package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rewear/internal/models"
)

const swapColumns = `id, requester_id, item_requested_id, swap_type, item_offered_id, points_offered, status, message,
	accepted_at, completed_at, cancelled_at, cancelled_by, cancelled_reason, created_at, updated_at`

const (
	createSwapQuery = `INSERT INTO content.swaps (requester_id, item_requested_id, swap_type, item_offered_id, points_offered, message)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + swapColumns + `;`

	getSwapQuery = `SELECT ` + swapColumns + ` FROM content.swaps WHERE id = $1;`

	hasOpenSwapQuery = `SELECT EXISTS (SELECT 1 FROM content.swaps
		WHERE requester_id = $1 AND item_requested_id = $2 AND status IN ('pending', 'accepted'));`

	transitionSwapQuery = `UPDATE content.swaps SET status = $3,
		accepted_at = COALESCE($4, accepted_at),
		cancelled_at = COALESCE($5, cancelled_at),
		cancelled_by = COALESCE($6, cancelled_by),
		cancelled_reason = COALESCE($7, cancelled_reason),
		updated_at = NOW()
		WHERE id = $1 AND status = $2 RETURNING ` + swapColumns + `;`

	completeSwapQuery = `UPDATE content.swaps SET status = 'completed', completed_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'accepted' RETURNING ` + swapColumns + `;`
)

func scanSwap(row rowScanner) (*models.Swap, error) {
	swap := &models.Swap{}
	var swapType, status string
	var itemOffered, cancelledBy sql.NullInt32
	var pointsOffered sql.NullInt64
	var message, cancelledReason sql.NullString
	var acceptedAt, completedAt, cancelledAt sql.NullTime

	err := row.Scan(&swap.ID, &swap.RequesterID, &swap.ItemRequestedID, &swapType, &itemOffered, &pointsOffered,
		&status, &message, &acceptedAt, &completedAt, &cancelledAt, &cancelledBy, &cancelledReason,
		&swap.CreatedAt, &swap.UpdatedAt)
	if err != nil {
		return nil, err
	}

	switch models.SwapType(swapType) {
	case models.SwapTypeDirect:
		swap.Terms = models.DirectTerms{ItemOffered: itemOffered.Int32}
	case models.SwapTypePoints:
		swap.Terms = models.PointsTerms{Amount: int(pointsOffered.Int64)}
	default:
		return nil, fmt.Errorf("unknown swap type %q", swapType)
	}

	swap.Status = models.SwapStatus(status)
	swap.Message = message.String
	swap.CancelledReason = cancelledReason.String
	swap.AcceptedAt = timePtr(acceptedAt)
	swap.CompletedAt = timePtr(completedAt)
	swap.CancelledAt = timePtr(cancelledAt)
	if cancelledBy.Valid {
		id := cancelledBy.Int32
		swap.CancelledBy = &id
	}

	return swap, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateSwap stores a new pending swap request.
// A concurrent request for the same requester and item loses on the open-pair index with ErrDuplicateOpenSwap.
func (postgresql *PostgreSQL) CreateSwap(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	var itemOffered sql.NullInt32
	var pointsOffered sql.NullInt64
	switch terms := swap.Terms.(type) {
	case models.DirectTerms:
		itemOffered = sql.NullInt32{Int32: terms.ItemOffered, Valid: true}
	case models.PointsTerms:
		pointsOffered = sql.NullInt64{Int64: int64(terms.Amount), Valid: true}
	default:
		return nil, fmt.Errorf("unsupported swap terms %T", swap.Terms)
	}

	created, err := scanSwap(postgresql.db.QueryRowContext(ctx, createSwapQuery,
		swap.RequesterID, swap.ItemRequestedID, string(swap.Terms.Type()), itemOffered, pointsOffered, nullString(swap.Message)))
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createSwapQuery: %s", err)
		return nil, mapError(err)
	}

	return created, nil
}

// GetSwap returns a swap by ID.
func (postgresql *PostgreSQL) GetSwap(ctx context.Context, swapID int32) (*models.Swap, error) {
	swap, err := scanSwap(postgresql.db.QueryRowContext(ctx, getSwapQuery, swapID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getSwapQuery: %s", err)
		return nil, err
	}

	return swap, nil
}

// HasOpenSwap reports whether the requester has a pending or accepted swap for the item.
func (postgresql *PostgreSQL) HasOpenSwap(ctx context.Context, requesterID, itemID int32) (bool, error) {
	var exists bool
	if err := postgresql.db.QueryRowContext(ctx, hasOpenSwapQuery, requesterID, itemID).Scan(&exists); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query hasOpenSwapQuery: %s", err)
		return false, err
	}
	return exists, nil
}

// ListSwaps returns swaps matching the filter, newest first.
func (postgresql *PostgreSQL) ListSwaps(ctx context.Context, filter models.SwapFilter) ([]models.Swap, error) {
	var conditions []string
	var args []any
	if filter.RequesterID != 0 {
		args = append(args, filter.RequesterID)
		conditions = append(conditions, fmt.Sprintf("requester_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, fmt.Sprintf("swap_type = $%d", len(args)))
	}

	query := "SELECT " + swapColumns + " FROM content.swaps"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := postgresql.db.QueryContext(ctx, query, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listSwapsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	const initialSwapsCapacity = 10
	swaps := make([]models.Swap, 0, initialSwapsCapacity)
	for rows.Next() {
		swap, err := scanSwap(rows)
		if err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan swap in ListSwaps method: %s", err)
			return nil, err
		}
		swaps = append(swaps, *swap)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListSwaps method: %s", err)
		return swaps, err
	}

	return swaps, nil
}

// TransitionSwap moves a swap from transition.From to transition.To if it is still in transition.From.
// Acceptance and cancellation metadata is recorded alongside. A swap found in any other state yields ErrStaleState.
func (postgresql *PostgreSQL) TransitionSwap(ctx context.Context, transition models.SwapTransition) (*models.Swap, error) {
	var acceptedAt, cancelledAt sql.NullTime
	var cancelledBy sql.NullInt32
	switch transition.To {
	case models.SwapStatusAccepted:
		acceptedAt = sql.NullTime{Time: transition.At, Valid: true}
	case models.SwapStatusCancelled:
		cancelledAt = sql.NullTime{Time: transition.At, Valid: true}
		if transition.CancelledBy != nil {
			cancelledBy = sql.NullInt32{Int32: *transition.CancelledBy, Valid: true}
		}
	case models.SwapStatusCompleted:
		return nil, errors.New("storage: completion must go through CompleteSwap")
	}

	swap, err := scanSwap(postgresql.db.QueryRowContext(ctx, transitionSwapQuery,
		transition.SwapID, string(transition.From), string(transition.To),
		acceptedAt, cancelledAt, cancelledBy, nullString(transition.CancelledReason)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaleState
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query transitionSwapQuery: %s", err)
		return nil, err
	}

	return swap, nil
}

// CompleteSwap completes an accepted swap and applies its side effects as one transaction.
//
// For a points swap the requester is debited, the item owner credited (both with ledger entries) and the
// requested item is redeemed. For a direct swap with ExchangeItems set both items are marked swapped.
// Every step is guarded against concurrent changes: the swap must still be accepted, the requester must still
// hold enough points and the items must still be available. If any guard or statement fails the whole
// transaction is rolled back and nothing is changed.
func (postgresql *PostgreSQL) CompleteSwap(ctx context.Context, completion models.SwapCompletion) (*models.Swap, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	swap, err := scanSwap(tx.QueryRowContext(ctx, completeSwapQuery, completion.Swap.ID, completion.At))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaleState
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query completeSwapQuery: %s", err)
		return nil, err
	}

	switch terms := swap.Terms.(type) {
	case models.PointsTerms:
		err = postgresql.UpdateUserPoints(ctx, tx, swap.RequesterID, -terms.Amount, &swap.ID, models.LedgerReasonSwapDebit)
		if err != nil {
			return nil, err
		}

		err = postgresql.UpdateUserPoints(ctx, tx, completion.OwnerID, terms.Amount, &swap.ID, models.LedgerReasonSwapCredit)
		if err != nil {
			return nil, err
		}

		if err = postgresql.HandOverItem(ctx, tx, swap.ItemRequestedID, models.ItemStatusRedeemed); err != nil {
			return nil, err
		}
	case models.DirectTerms:
		if completion.ExchangeItems {
			if err = postgresql.HandOverItem(ctx, tx, swap.ItemRequestedID, models.ItemStatusSwapped); err != nil {
				return nil, err
			}
			if err = postgresql.HandOverItem(ctx, tx, terms.ItemOffered, models.ItemStatusSwapped); err != nil {
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return swap, nil
}
