package app

import (
	"context"
	"errors"

	"rewear/internal/models"
	"rewear/internal/storage"
)

// ListModerationQueue returns one page of listings in any status, optionally narrowed to one status.
func (app *App) ListModerationQueue(ctx context.Context, status models.ItemStatus, pagination models.Pagination) (*models.ItemPage, error) {
	pagination = normalizePagination(pagination)

	items, err := app.db.ListItems(ctx, models.ItemFilter{
		Status: status,
		Limit:  pagination.Limit,
		Offset: (pagination.Page - 1) * pagination.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &models.ItemPage{Items: items, Page: pagination.Page, Limit: pagination.Limit}, nil
}

// ApproveItem moves a pending listing into the available pool.
func (app *App) ApproveItem(ctx context.Context, moderatorID, itemID int32) (*models.Item, error) {
	return app.moderate(ctx, models.ItemModeration{
		ItemID:      itemID,
		ModeratorID: moderatorID,
		Approve:     true,
		At:          app.now(),
	})
}

// RejectItem rejects a pending listing with the given reason.
func (app *App) RejectItem(ctx context.Context, moderatorID, itemID int32, req models.RejectItemRequest) (*models.Item, error) {
	if err := app.validateStruct(req); err != nil {
		return nil, err
	}

	return app.moderate(ctx, models.ItemModeration{
		ItemID:      itemID,
		ModeratorID: moderatorID,
		Reason:      req.Reason,
		At:          app.now(),
	})
}

func (app *App) moderate(ctx context.Context, moderation models.ItemModeration) (*models.Item, error) {
	item, err := app.db.ModerateItem(ctx, moderation)
	if errors.Is(err, storage.ErrStaleState) {
		// Tell a missing item apart from one that was already moderated.
		if _, getErr := app.db.GetItem(ctx, moderation.ItemID); errors.Is(getErr, storage.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, ErrItemNotPending
	}
	if err != nil {
		return nil, err
	}

	decision := "rejected"
	if moderation.Approve {
		decision = "approved"
	}
	app.settings.Metrics.ItemModerated(decision)
	app.log.Sugar().Infof("Admin %d %s item %d", moderation.ModeratorID, decision, item.ID)

	return item, nil
}

// Dashboard returns the platform totals shown to administrators.
func (app *App) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return app.db.GetDashboardStats(ctx)
}
