package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rewear/internal/models"
)

const itemColumns = `id, title, description, category, type, size, condition, tags, images, points_value,
	uploader_id, status, is_available, approved_by, approved_at, rejected_reason, created_at, updated_at`

const (
	createItemQuery = `INSERT INTO content.items (title, description, category, type, size, condition, tags, images, points_value, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING ` + itemColumns + `;`

	getItemQuery = `SELECT ` + itemColumns + ` FROM content.items WHERE id = $1;`

	approveItemQuery = `UPDATE content.items SET status = 'available', approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' RETURNING ` + itemColumns + `;`

	rejectItemQuery = `UPDATE content.items SET status = 'rejected', rejected_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' RETURNING ` + itemColumns + `;`

	handOverItemQuery = `UPDATE content.items SET status = $2, is_available = FALSE, updated_at = NOW()
		WHERE id = $1 AND status = 'available' AND is_available;`
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var tags, images []byte
	var approvedBy sql.NullInt32
	var approvedAt sql.NullTime
	var rejectedReason sql.NullString
	var status string

	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Category, &item.Type, &item.Size, &item.Condition,
		&tags, &images, &item.PointsValue, &item.UploaderID, &status, &item.IsAvailable,
		&approvedBy, &approvedAt, &rejectedReason, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Status = models.ItemStatus(status)
	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("decoding item tags: %w", err)
	}
	if err := json.Unmarshal(images, &item.Images); err != nil {
		return nil, fmt.Errorf("decoding item images: %w", err)
	}
	if approvedBy.Valid {
		id := approvedBy.Int32
		item.ApprovedBy = &id
	}
	if approvedAt.Valid {
		at := approvedAt.Time
		item.ApprovedAt = &at
	}
	item.RejectedReason = rejectedReason.String

	return item, nil
}

// CreateItem stores a new listing. The database assigns the initial pending status.
func (postgresql *PostgreSQL) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	encodedTags, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	encodedImages, err := json.Marshal(item.Images)
	if err != nil {
		return nil, err
	}

	created, err := scanItem(postgresql.db.QueryRowContext(ctx, createItemQuery,
		item.Title, item.Description, item.Category, item.Type, item.Size, item.Condition,
		string(encodedTags), string(encodedImages), item.PointsValue, item.UploaderID))
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createItemQuery: %s", err)
		return nil, err
	}

	return created, nil
}

// GetItem returns a listing by ID.
func (postgresql *PostgreSQL) GetItem(ctx context.Context, itemID int32) (*models.Item, error) {
	item, err := scanItem(postgresql.db.QueryRowContext(ctx, getItemQuery, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getItemQuery: %s", err)
		return nil, err
	}

	return item, nil
}

// buildListItemsQuery renders the filtered listing query and its positional arguments.
func buildListItemsQuery(filter models.ItemFilter) (string, []any) {
	var conditions []string
	var args []any
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.AvailableOnly {
		conditions = append(conditions, "status = 'available' AND is_available")
	} else if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.UploaderID != 0 {
		add("uploader_id = $%d", filter.UploaderID)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.Size != "" {
		add("size = $%d", filter.Size)
	}
	if filter.Condition != "" {
		add("condition = $%d", filter.Condition)
	}
	if filter.Search != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d OR tags::text ILIKE $%[1]d)", "%"+filter.Search+"%")
	}

	var query strings.Builder
	query.WriteString("SELECT " + itemColumns + " FROM content.items")
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	return query.String(), args
}

// ListItems returns listings matching the filter, newest first.
func (postgresql *PostgreSQL) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	query, args := buildListItemsQuery(filter)

	rows, err := postgresql.db.QueryContext(ctx, query, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listItemsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Item, 0, filter.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan item in ListItems method: %s", err)
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListItems method: %s", err)
		return items, err
	}

	return items, nil
}

// ModerateItem applies an approve or reject decision to a pending item.
// It fails with ErrStaleState when the item is no longer pending.
func (postgresql *PostgreSQL) ModerateItem(ctx context.Context, moderation models.ItemModeration) (*models.Item, error) {
	var row *sql.Row
	if moderation.Approve {
		row = postgresql.db.QueryRowContext(ctx, approveItemQuery, moderation.ItemID, moderation.ModeratorID, moderation.At)
	} else {
		row = postgresql.db.QueryRowContext(ctx, rejectItemQuery, moderation.ItemID, moderation.Reason)
	}

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaleState
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a moderation query: %s", err)
		return nil, err
	}

	return item, nil
}

// HandOverItem marks an available item as gone with the given final status.
// The update is guarded on the item still being available; otherwise it fails with ErrItemUnavailable.
func (postgresql *PostgreSQL) HandOverItem(ctx context.Context, tx *sql.Tx, itemID int32, status models.ItemStatus) error {
	result, err := tx.ExecContext(ctx, handOverItemQuery, itemID, string(status))
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query handOverItemQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in handOverItemQuery: %s", err)
		return err
	}
	if rows == 0 {
		return ErrItemUnavailable
	}

	return nil
}
