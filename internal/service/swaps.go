package service

import (
	"context"
	"net/http"

	"rewear/internal/models"
	"rewear/internal/pkg/auth"
)

// createSwapHandler creates a swap request on behalf of the caller.
func (handlers *handlers) createSwapHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	var createSwapRequest models.CreateSwapRequest
	if err := readJSON(req, &createSwapRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	swap, err := handlers.app.CreateSwapRequest(ctx, userID, createSwapRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusCreated, swap)
}

// listSwapsHandler returns the swaps the caller requested, optionally filtered by status and type.
func (handlers *handlers) listSwapsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := models.SwapFilter{
		Status: models.SwapStatus(req.URL.Query().Get("status")),
		Type:   models.SwapType(req.URL.Query().Get("type")),
	}

	swaps, err := handlers.app.ListSwaps(ctx, userID, filter)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, swaps)
}

func (handlers *handlers) getSwapHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	swapID, err := pathID(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	swap, err := handlers.app.GetSwap(ctx, swapID, userID)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, swap)
}

// updateSwapStatusHandler moves a swap to the requested status.
func (handlers *handlers) updateSwapStatusHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, ok := auth.UserID(req.Context())
	if !ok {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	swapID, err := pathID(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var updateRequest models.UpdateSwapStatusRequest
	if err = readJSON(req, &updateRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	swap, err := handlers.app.UpdateSwapStatus(ctx, swapID, userID, updateRequest)
	if err != nil {
		handlers.writeAppError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, swap)
}
