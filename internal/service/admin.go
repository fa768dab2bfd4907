package service

import (
	"context"
	"net/http"

	"rewear/internal/models"
	"rewear/internal/pkg/auth"
)

// moderationQueueHandler lists items of any status for administrators.
func (handlers *handlers) moderationQueueHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	status := models.ItemStatus(req.URL.Query().Get("status"))
	pagination := models.Pagination{Page: queryInt(req, "page"), Limit: queryInt(req, "limit")}

	page, err := handlers.app.ListModerationQueue(ctx, status, pagination)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, page)
}

func (handlers *handlers) approveItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	adminID, _ := auth.UserID(req.Context())
	itemID, err := pathID(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.ApproveItem(ctx, adminID, itemID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, item)
}

func (handlers *handlers) rejectItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	adminID, _ := auth.UserID(req.Context())
	itemID, err := pathID(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var rejectRequest models.RejectItemRequest
	if err = readJSON(req, &rejectRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.RejectItem(ctx, adminID, itemID, rejectRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, item)
}

func (handlers *handlers) dashboardHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := handlers.app.Dashboard(ctx)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, stats)
}
