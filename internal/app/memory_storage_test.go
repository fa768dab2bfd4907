package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"rewear/internal/models"
	"rewear/internal/storage"
)

// memoryStorage is an in-memory storage.Storage used to play whole swap lifecycles.
// Every method works on copies so that callers never alias stored records.
type memoryStorage struct {
	mu     sync.Mutex
	users  map[int32]*models.User
	items  map[int32]*models.Item
	swaps  map[int32]*models.Swap
	ledger []models.LedgerEntry
	nextID int32

	// failCompletionAfterDebit simulates a failure between the debit and the credit of a completion.
	failCompletionAfterDebit bool
}

var errInjected = errors.New("injected failure")

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		users: make(map[int32]*models.User),
		items: make(map[int32]*models.Item),
		swaps: make(map[int32]*models.Swap),
	}
}

func (m *memoryStorage) id() int32 {
	m.nextID++
	return m.nextID
}

func (m *memoryStorage) addUser(username string, points int) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.users[id] = &models.User{ID: id, Username: username, Points: points}
	return id
}

func (m *memoryStorage) addAvailableItem(owner int32, pointsValue int) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.items[id] = &models.Item{
		ID:          id,
		Title:       "item",
		PointsValue: pointsValue,
		UploaderID:  owner,
		Status:      models.ItemStatusAvailable,
		IsAvailable: true,
	}
	return id
}

func (m *memoryStorage) balance(userID int32) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].Points
}

func (m *memoryStorage) item(itemID int32) models.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.items[itemID]
}

func (m *memoryStorage) swap(swapID int32) models.Swap {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.swaps[swapID]
}

func (m *memoryStorage) Close() {}

func (m *memoryStorage) CheckUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			found := *u
			return &found, nil
		}
	}
	return user, nil
}

func (m *memoryStorage) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *user
	created.ID = m.id()
	m.users[created.ID] = &created
	result := created
	return &result, nil
}

func (m *memoryStorage) GetUser(_ context.Context, userID int32) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (m *memoryStorage) CreateItem(_ context.Context, item *models.Item) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *item
	created.ID = m.id()
	created.Status = models.ItemStatusPending
	created.IsAvailable = true
	m.items[created.ID] = &created
	result := created
	return &result, nil
}

func (m *memoryStorage) GetItem(_ context.Context, itemID int32) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	found := *item
	return &found, nil
}

func (m *memoryStorage) ListItems(_ context.Context, filter models.ItemFilter) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []models.Item
	for _, item := range m.items {
		if filter.AvailableOnly && !item.Swappable() {
			continue
		}
		if filter.UploaderID != 0 && item.UploaderID != filter.UploaderID {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (m *memoryStorage) ModerateItem(_ context.Context, moderation models.ItemModeration) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[moderation.ItemID]
	if !ok || item.Status != models.ItemStatusPending {
		return nil, storage.ErrStaleState
	}
	if moderation.Approve {
		item.Status = models.ItemStatusAvailable
		item.ApprovedBy = &moderation.ModeratorID
		item.ApprovedAt = &moderation.At
	} else {
		item.Status = models.ItemStatusRejected
		item.RejectedReason = moderation.Reason
	}
	result := *item
	return &result, nil
}

func (m *memoryStorage) CreateSwap(_ context.Context, swap *models.Swap) (*models.Swap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.swaps {
		if existing.RequesterID == swap.RequesterID && existing.ItemRequestedID == swap.ItemRequestedID && existing.Status.Open() {
			return nil, storage.ErrDuplicateOpenSwap
		}
	}
	created := *swap
	created.ID = m.id()
	created.Status = models.SwapStatusPending
	m.swaps[created.ID] = &created
	result := created
	return &result, nil
}

func (m *memoryStorage) GetSwap(_ context.Context, swapID int32) (*models.Swap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	swap, ok := m.swaps[swapID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	found := *swap
	return &found, nil
}

func (m *memoryStorage) HasOpenSwap(_ context.Context, requesterID, itemID int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, swap := range m.swaps {
		if swap.RequesterID == requesterID && swap.ItemRequestedID == itemID && swap.Status.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStorage) ListSwaps(_ context.Context, filter models.SwapFilter) ([]models.Swap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var swaps []models.Swap
	for _, swap := range m.swaps {
		if swap.RequesterID == filter.RequesterID {
			swaps = append(swaps, *swap)
		}
	}
	return swaps, nil
}

func (m *memoryStorage) TransitionSwap(_ context.Context, transition models.SwapTransition) (*models.Swap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	swap, ok := m.swaps[transition.SwapID]
	if !ok || swap.Status != transition.From {
		return nil, storage.ErrStaleState
	}
	swap.Status = transition.To
	at := transition.At
	switch transition.To {
	case models.SwapStatusAccepted:
		swap.AcceptedAt = &at
	case models.SwapStatusCancelled:
		swap.CancelledAt = &at
		swap.CancelledBy = transition.CancelledBy
		swap.CancelledReason = transition.CancelledReason
	}
	result := *swap
	return &result, nil
}

// CompleteSwap stages every change on copies and publishes them only when all guards pass.
func (m *memoryStorage) CompleteSwap(_ context.Context, completion models.SwapCompletion) (*models.Swap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.swaps[completion.Swap.ID]
	if !ok || stored.Status != models.SwapStatusAccepted {
		return nil, storage.ErrStaleState
	}
	swap := *stored
	swap.Status = models.SwapStatusCompleted
	at := completion.At
	swap.CompletedAt = &at

	users := make(map[int32]models.User)
	items := make(map[int32]models.Item)
	var entries []models.LedgerEntry

	adjust := func(userID int32, delta int, reason string) error {
		u, staged := users[userID]
		if !staged {
			u = *m.users[userID]
		}
		if u.Points+delta < 0 {
			return storage.ErrInsufficientPoints
		}
		u.Points += delta
		users[userID] = u
		swapID := swap.ID
		entries = append(entries, models.LedgerEntry{UserID: userID, SwapID: &swapID, Delta: delta, Reason: reason})
		return nil
	}
	handOver := func(itemID int32, status models.ItemStatus) error {
		item := *m.items[itemID]
		if !item.Swappable() {
			return storage.ErrItemUnavailable
		}
		item.Status = status
		item.IsAvailable = false
		items[itemID] = item
		return nil
	}

	switch terms := swap.Terms.(type) {
	case models.PointsTerms:
		if err := adjust(swap.RequesterID, -terms.Amount, models.LedgerReasonSwapDebit); err != nil {
			return nil, err
		}
		if m.failCompletionAfterDebit {
			return nil, errInjected
		}
		if err := adjust(completion.OwnerID, terms.Amount, models.LedgerReasonSwapCredit); err != nil {
			return nil, err
		}
		if err := handOver(swap.ItemRequestedID, models.ItemStatusRedeemed); err != nil {
			return nil, err
		}
	case models.DirectTerms:
		if completion.ExchangeItems {
			if err := handOver(swap.ItemRequestedID, models.ItemStatusSwapped); err != nil {
				return nil, err
			}
			if err := handOver(terms.ItemOffered, models.ItemStatusSwapped); err != nil {
				return nil, err
			}
		}
	}

	for id, u := range users {
		m.users[id] = &u
	}
	for id, item := range items {
		m.items[id] = &item
	}
	m.ledger = append(m.ledger, entries...)
	m.swaps[swap.ID] = &swap

	result := swap
	return &result, nil
}

func (m *memoryStorage) GetInfo(_ context.Context, userID int32) (*models.InfoResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &models.InfoResponse{Username: u.Username, Points: u.Points}, nil
}

func (m *memoryStorage) GetDashboardStats(_ context.Context) (*models.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.DashboardStats{TotalUsers: len(m.users), TotalItems: len(m.items), TotalSwaps: len(m.swaps)}, nil
}

var _ storage.Storage = (*memoryStorage)(nil)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
