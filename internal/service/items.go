package service

import (
	"context"
	"net/http"

	"rewear/internal/models"
	"rewear/internal/pkg/auth"
)

// createItemHandler lists a new garment for moderation.
func (handlers *handlers) createItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	var createItemRequest models.CreateItemRequest
	if err := readJSON(req, &createItemRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.CreateItem(ctx, userID, createItemRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusCreated, item)
}

// browseItemsHandler returns one page of the items open for swapping.
func (handlers *handlers) browseItemsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	query := req.URL.Query()
	filter := models.ItemFilter{
		Category:  query.Get("category"),
		Type:      query.Get("type"),
		Size:      query.Get("size"),
		Condition: query.Get("condition"),
		Search:    query.Get("search"),
	}
	pagination := models.Pagination{Page: queryInt(req, "page"), Limit: queryInt(req, "limit")}

	page, err := handlers.app.BrowseItems(ctx, filter, pagination)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, page)
}

// myItemsHandler returns every listing of the caller.
func (handlers *handlers) myItemsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := handlers.app.ListUserItems(ctx, userID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, items)
}

func (handlers *handlers) getItemHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	itemID, err := pathID(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := handlers.app.GetItem(ctx, itemID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, item)
}
