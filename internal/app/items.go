package app

import (
	"context"
	"errors"

	"rewear/internal/models"
	"rewear/internal/storage"
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 100
)

// normalizePagination applies the listing defaults: page 1, 12 items, at most 100 items per page.
func normalizePagination(pagination models.Pagination) models.Pagination {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = defaultPageLimit
	}
	if pagination.Limit > maxPageLimit {
		pagination.Limit = maxPageLimit
	}
	return pagination
}

// CreateItem validates and stores a new listing owned by userID. The listing waits for moderation.
func (app *App) CreateItem(ctx context.Context, userID int32, req models.CreateItemRequest) (*models.Item, error) {
	if err := app.validateStruct(req); err != nil {
		return nil, err
	}

	item, err := app.db.CreateItem(ctx, &models.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Size:        req.Size,
		Condition:   req.Condition,
		Tags:        req.Tags,
		Images:      req.Images,
		PointsValue: req.PointsValue,
		UploaderID:  userID,
	})
	if err != nil {
		return nil, err
	}

	app.settings.Metrics.ItemListed()
	app.log.Sugar().Infof("User %d listed item %d for moderation", userID, item.ID)
	return item, nil
}

// GetItem returns a single listing.
func (app *App) GetItem(ctx context.Context, itemID int32) (*models.Item, error) {
	item, err := app.db.GetItem(ctx, itemID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// BrowseItems returns one page of the listings that can currently be swap-requested.
// Moderation fields of the filter are ignored.
func (app *App) BrowseItems(ctx context.Context, filter models.ItemFilter, pagination models.Pagination) (*models.ItemPage, error) {
	pagination = normalizePagination(pagination)

	filter.AvailableOnly = true
	filter.Status = ""
	filter.UploaderID = 0
	filter.Limit = pagination.Limit
	filter.Offset = (pagination.Page - 1) * pagination.Limit

	items, err := app.db.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.ItemPage{Items: items, Page: pagination.Page, Limit: pagination.Limit}, nil
}

// ListUserItems returns every listing of the user regardless of its status.
func (app *App) ListUserItems(ctx context.Context, userID int32) ([]models.Item, error) {
	return app.db.ListItems(ctx, models.ItemFilter{UploaderID: userID})
}
