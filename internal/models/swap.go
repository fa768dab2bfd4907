package models

import (
	"encoding/json"
	"time"
)

// SwapType distinguishes item-for-item swaps from item-for-points swaps.
type SwapType string

const (
	SwapTypeDirect SwapType = "direct"
	SwapTypePoints SwapType = "points"
)

// Valid reports whether t is one of the known swap types.
func (t SwapType) Valid() bool {
	return t == SwapTypeDirect || t == SwapTypePoints
}

// SwapStatus is the state of a swap request.
type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCompleted SwapStatus = "completed"
	SwapStatusCancelled SwapStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

// Open reports whether a swap in this status still blocks a new request for the same item by the same requester.
func (s SwapStatus) Open() bool {
	return s == SwapStatusPending || s == SwapStatusAccepted
}

// Terminal reports whether no further transitions are possible.
func (s SwapStatus) Terminal() bool {
	return s == SwapStatusRejected || s == SwapStatusCompleted || s == SwapStatusCancelled
}

// SwapTerms is what the requester gives in return for the requested item.
// It is either DirectTerms or PointsTerms.
type SwapTerms interface {
	Type() SwapType
	swapTerms()
}

// DirectTerms offers one of the requester's own items.
type DirectTerms struct {
	ItemOffered int32
}

func (DirectTerms) Type() SwapType { return SwapTypeDirect }
func (DirectTerms) swapTerms()     {}

// PointsTerms offers an amount of the requester's points.
type PointsTerms struct {
	Amount int
}

func (PointsTerms) Type() SwapType { return SwapTypePoints }
func (PointsTerms) swapTerms()     {}

// Swap is a request by RequesterID to obtain ItemRequestedID.
type Swap struct {
	ID              int32
	RequesterID     int32
	ItemRequestedID int32
	Terms           SwapTerms
	Status          SwapStatus
	Message         string
	AcceptedAt      *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	CancelledBy     *int32
	CancelledReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type swapJSON struct {
	ID              int32      `json:"id"`
	Requester       int32      `json:"requester"`
	ItemRequested   int32      `json:"itemRequested"`
	ItemOffered     *int32     `json:"itemOffered,omitempty"`
	PointsOffered   *int       `json:"pointsOffered,omitempty"`
	SwapType        SwapType   `json:"swapType"`
	Status          SwapStatus `json:"status"`
	Message         string     `json:"message,omitempty"`
	AcceptedAt      *time.Time `json:"acceptedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy     *int32     `json:"cancelledBy,omitempty"`
	CancelledReason string     `json:"cancelledReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// MarshalJSON flattens the terms variant into swapType plus itemOffered or pointsOffered.
func (s Swap) MarshalJSON() ([]byte, error) {
	out := swapJSON{
		ID:              s.ID,
		Requester:       s.RequesterID,
		ItemRequested:   s.ItemRequestedID,
		Status:          s.Status,
		Message:         s.Message,
		AcceptedAt:      s.AcceptedAt,
		CompletedAt:     s.CompletedAt,
		CancelledAt:     s.CancelledAt,
		CancelledBy:     s.CancelledBy,
		CancelledReason: s.CancelledReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	switch terms := s.Terms.(type) {
	case DirectTerms:
		out.SwapType = SwapTypeDirect
		out.ItemOffered = &terms.ItemOffered
	case PointsTerms:
		out.SwapType = SwapTypePoints
		out.PointsOffered = &terms.Amount
	}
	return json.Marshal(out)
}

// CreateSwapRequest is the payload for requesting a swap.
type CreateSwapRequest struct {
	ItemRequested int32  `json:"itemRequested" validate:"required"`
	ItemOffered   int32  `json:"itemOffered"`
	PointsOffered int    `json:"pointsOffered"`
	SwapType      string `json:"swapType" validate:"required,oneof=direct points"`
	Message       string `json:"message" validate:"max=500"`
}

// UpdateSwapStatusRequest is the payload for moving a swap to a new status.
type UpdateSwapStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=accepted rejected completed cancelled"`
	Message string `json:"message" validate:"max=200"`
}

// SwapFilter narrows swap listings.
type SwapFilter struct {
	RequesterID int32
	Status      SwapStatus
	Type        SwapType
}

// SwapTransition is a compare-and-set status change of a swap that has no side effects on items or balances.
type SwapTransition struct {
	SwapID          int32
	From            SwapStatus
	To              SwapStatus
	At              time.Time
	CancelledBy     *int32
	CancelledReason string
}

// SwapCompletion carries everything the storage layer needs to complete an accepted swap in one unit.
type SwapCompletion struct {
	Swap    *Swap
	OwnerID int32
	// ExchangeItems flips both items of a direct swap to swapped.
	ExchangeItems bool
	At            time.Time
}
