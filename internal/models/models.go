// Package models defines the data structures used throughout the application.
// It includes the domain records (users, items, swaps, ledger entries) and the
// request and response payloads of the HTTP API.
package models

import "time"

// AuthRequest represents the authentication request payload.
// It contains the username and password provided by the user.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response payload.
// It contains the generated token upon successful authentication.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents a generic error response payload.
// It contains a string describing the encountered error.
type ErrorResponse struct {
	Errors string `json:"errors"`
}

// User represents a user in the system.
// Points is a running balance; every change to it is mirrored by a LedgerEntry.
type User struct {
	ID       int32
	Username string
	Password string
	Points   int
	IsAdmin  bool
}

// Ledger entry reasons.
const (
	LedgerReasonSignupBonus = "signup_bonus"
	LedgerReasonSwapDebit   = "swap_debit"
	LedgerReasonSwapCredit  = "swap_credit"
)

// LedgerEntry is one append-only record of a points balance change.
type LedgerEntry struct {
	ID        int64     `json:"id"`
	UserID    int32     `json:"userId"`
	SwapID    *int32    `json:"swapId,omitempty"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// PointsHistory splits a user's ledger into incoming and outgoing entries.
type PointsHistory struct {
	Received []LedgerEntry `json:"received"`
	Spent    []LedgerEntry `json:"spent"`
}

// InfoResponse represents the response payload for the /api/info endpoint.
type InfoResponse struct {
	Username      string         `json:"username"`
	Points        int            `json:"points"`
	ListedItems   int            `json:"listedItems"`
	PointsHistory *PointsHistory `json:"pointsHistory"`
}

// DashboardStats holds the moderation dashboard counters.
type DashboardStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalItems     int `json:"totalItems"`
	PendingItems   int `json:"pendingItems"`
	TotalSwaps     int `json:"totalSwaps"`
	CompletedSwaps int `json:"completedSwaps"`
}
