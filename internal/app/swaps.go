package app

import (
	"context"
	"errors"
	"slices"

	"rewear/internal/models"
	"rewear/internal/storage"
)

// swapTransitions lists the statuses reachable from each non-terminal status.
var swapTransitions = map[models.SwapStatus][]models.SwapStatus{
	models.SwapStatusPending:  {models.SwapStatusAccepted, models.SwapStatusRejected, models.SwapStatusCancelled},
	models.SwapStatusAccepted: {models.SwapStatusCompleted, models.SwapStatusCancelled},
}

func canTransition(from, to models.SwapStatus) bool {
	return slices.Contains(swapTransitions[from], to)
}

// CreateSwapRequest validates a swap request by requesterID and stores it as pending.
//
// The checks run in a fixed order and the first violation is reported: the requested item must exist,
// be available and belong to someone else; a direct swap needs an available item of the requester's own;
// a points swap needs a positive amount covered by the requester's current balance; and the requester may
// not already have an open swap for the item. No points are reserved.
func (app *App) CreateSwapRequest(ctx context.Context, requesterID int32, req models.CreateSwapRequest) (*models.Swap, error) {
	if err := app.validateStruct(req); err != nil {
		return nil, err
	}

	requested, err := app.db.GetItem(ctx, req.ItemRequested)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRequestedItemNotFound
	}
	if err != nil {
		return nil, err
	}

	if !requested.Swappable() {
		return nil, ErrItemNotAvailable
	}
	if requested.UploaderID == requesterID {
		return nil, ErrOwnItem
	}

	var terms models.SwapTerms
	switch models.SwapType(req.SwapType) {
	case models.SwapTypeDirect:
		terms, err = app.directTerms(ctx, requesterID, req.ItemOffered)
	case models.SwapTypePoints:
		terms, err = app.pointsTerms(ctx, requesterID, req.PointsOffered)
	}
	if err != nil {
		return nil, err
	}

	open, err := app.db.HasOpenSwap(ctx, requesterID, requested.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateRequest
	}

	swap, err := app.db.CreateSwap(ctx, &models.Swap{
		RequesterID:     requesterID,
		ItemRequestedID: requested.ID,
		Terms:           terms,
		Message:         req.Message,
	})
	if errors.Is(err, storage.ErrDuplicateOpenSwap) {
		return nil, ErrDuplicateRequest
	}
	if err != nil {
		return nil, err
	}

	app.settings.Metrics.SwapCreated(string(terms.Type()))
	app.log.Sugar().Infof("User %d requested item %d with a %s swap %d", requesterID, requested.ID, terms.Type(), swap.ID)

	return swap, nil
}

func (app *App) directTerms(ctx context.Context, requesterID, itemOfferedID int32) (models.SwapTerms, error) {
	if itemOfferedID == 0 {
		return nil, ErrOfferedItemRequired
	}

	offered, err := app.db.GetItem(ctx, itemOfferedID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrOfferedItemNotFound
	}
	if err != nil {
		return nil, err
	}

	if offered.UploaderID != requesterID {
		return nil, ErrOfferedItemNotOwned
	}
	if !offered.Swappable() {
		return nil, ErrOfferedItemNotAvailable
	}

	return models.DirectTerms{ItemOffered: offered.ID}, nil
}

func (app *App) pointsTerms(ctx context.Context, requesterID int32, amount int) (models.SwapTerms, error) {
	if amount <= 0 {
		return nil, ErrInvalidPoints
	}

	requester, err := app.db.GetUser(ctx, requesterID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if requester.Points < amount {
		return nil, ErrInsufficientPoints
	}

	return models.PointsTerms{Amount: amount}, nil
}

// UpdateSwapStatus moves a swap to req.Status on behalf of actingUserID.
//
// Only the owner of the requested item and the requester may act on a swap. Accepting, rejecting and
// completing are reserved to the owner, cancelling to the requester. The move must follow the transition
// table; a swap changed by someone else in the meantime is reported as a conflict and left untouched.
// Completion applies the points transfer and item hand-over in the same unit as the status change.
func (app *App) UpdateSwapStatus(ctx context.Context, swapID, actingUserID int32, req models.UpdateSwapStatusRequest) (*models.Swap, error) {
	if err := app.validateStruct(req); err != nil {
		return nil, err
	}
	target := models.SwapStatus(req.Status)

	swap, err := app.db.GetSwap(ctx, swapID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSwapNotFound
	}
	if err != nil {
		return nil, err
	}

	requested, err := app.db.GetItem(ctx, swap.ItemRequestedID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRequestedItemNotFound
	}
	if err != nil {
		return nil, err
	}

	isOwner := requested.UploaderID == actingUserID
	isRequester := swap.RequesterID == actingUserID
	if !isOwner && !isRequester {
		return nil, ErrNotSwapParty
	}
	if err := authorizeTransition(target, isOwner, isRequester); err != nil {
		return nil, err
	}

	if !canTransition(swap.Status, target) {
		return nil, newErrorf(ErrConflict, "cannot change swap status from %s to %s", swap.Status, target)
	}

	var updated *models.Swap
	if target == models.SwapStatusCompleted {
		updated, err = app.db.CompleteSwap(ctx, models.SwapCompletion{
			Swap:          swap,
			OwnerID:       requested.UploaderID,
			ExchangeItems: app.settings.DirectCompletion == DirectCompletionExchange,
			At:            app.now(),
		})
	} else {
		transition := models.SwapTransition{
			SwapID: swap.ID,
			From:   swap.Status,
			To:     target,
			At:     app.now(),
		}
		if target == models.SwapStatusCancelled {
			transition.CancelledBy = &actingUserID
			transition.CancelledReason = req.Message
		}
		updated, err = app.db.TransitionSwap(ctx, transition)
	}
	if err != nil {
		return nil, app.mapSwapUpdateError(swap, err)
	}

	app.settings.Metrics.SwapTransitioned(string(target))
	if terms, ok := updated.Terms.(models.PointsTerms); ok && target == models.SwapStatusCompleted {
		app.settings.Metrics.PointsTransferred(terms.Amount)
	}
	app.log.Sugar().Infof("User %d moved swap %d from %s to %s", actingUserID, swap.ID, swap.Status, target)

	return updated, nil
}

func authorizeTransition(target models.SwapStatus, isOwner, isRequester bool) error {
	switch target {
	case models.SwapStatusAccepted:
		if !isOwner {
			return ErrOnlyOwnerCanAccept
		}
	case models.SwapStatusRejected:
		if !isOwner {
			return ErrOnlyOwnerCanReject
		}
	case models.SwapStatusCompleted:
		if !isOwner {
			return ErrOnlyOwnerCanComplete
		}
	case models.SwapStatusCancelled:
		if !isRequester {
			return ErrOnlyRequesterCanCancel
		}
	}
	return nil
}

func (app *App) mapSwapUpdateError(swap *models.Swap, err error) error {
	switch {
	case errors.Is(err, storage.ErrStaleState):
		return ErrSwapStateChanged
	case errors.Is(err, storage.ErrInsufficientPoints):
		return ErrInsufficientPoints
	case errors.Is(err, storage.ErrItemUnavailable):
		return ErrItemNotAvailable
	}
	app.log.Sugar().Errorf("Failed to update swap %d: %s", swap.ID, err)
	return err
}

// GetSwap returns a swap to its requester or to the owner of the requested item.
func (app *App) GetSwap(ctx context.Context, swapID, viewerID int32) (*models.Swap, error) {
	swap, err := app.db.GetSwap(ctx, swapID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSwapNotFound
	}
	if err != nil {
		return nil, err
	}

	if swap.RequesterID == viewerID {
		return swap, nil
	}

	requested, err := app.db.GetItem(ctx, swap.ItemRequestedID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if requested == nil || requested.UploaderID != viewerID {
		return nil, ErrNotSwapViewer
	}

	return swap, nil
}

// ListSwaps returns the swaps requested by userID, newest first, optionally narrowed by status and type.
func (app *App) ListSwaps(ctx context.Context, userID int32, filter models.SwapFilter) ([]models.Swap, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, newErrorf(ErrBadRequest, "invalid status filter %q", filter.Status)
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, newErrorf(ErrBadRequest, "invalid type filter %q", filter.Type)
	}

	filter.RequesterID = userID
	return app.db.ListSwaps(ctx, filter)
}
