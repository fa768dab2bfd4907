package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/models"
	"rewear/internal/pkg/logger"
	"rewear/internal/pkg/metrics"
)

func newMemoryApp(policy DirectCompletionPolicy) (*App, *memoryStorage) {
	db := newMemoryStorage()
	return NewApp(db, logger.NewNop(), Settings{
		StartingPoints:   100,
		DirectCompletion: policy,
		Metrics:          metrics.New(),
		Now:              func() time.Time { return testNow },
	}), db
}

func TestPointsSwapLifecycle(t *testing.T) {
	ctx := context.Background()
	a, db := newMemoryApp(DirectCompletionNone)

	u1 := db.addUser("u1", 0)
	u2 := db.addUser("u2", 150)
	u3 := db.addUser("u3", 500)
	itemA := db.addAvailableItem(u1, 100)

	swap, err := a.CreateSwapRequest(ctx, u2, models.CreateSwapRequest{
		ItemRequested: itemA,
		SwapType:      "points",
		PointsOffered: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusPending, swap.Status)

	_, err = a.CreateSwapRequest(ctx, u2, models.CreateSwapRequest{
		ItemRequested: itemA,
		SwapType:      "points",
		PointsOffered: 100,
	})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.ErrorIs(t, err, ErrConflict)

	swap, err = a.UpdateSwapStatus(ctx, swap.ID, u1, models.UpdateSwapStatusRequest{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusAccepted, swap.Status)
	require.NotNil(t, swap.AcceptedAt)
	assert.Equal(t, testNow, *swap.AcceptedAt)

	swap, err = a.UpdateSwapStatus(ctx, swap.ID, u1, models.UpdateSwapStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusCompleted, swap.Status)

	assert.Equal(t, 50, db.balance(u2))
	assert.Equal(t, 100, db.balance(u1))
	item := db.item(itemA)
	assert.Equal(t, models.ItemStatusRedeemed, item.Status)
	assert.False(t, item.IsAvailable)
	require.Len(t, db.ledger, 2)
	assert.Equal(t, -100, db.ledger[0].Delta)
	assert.Equal(t, 100, db.ledger[1].Delta)

	_, err = a.CreateSwapRequest(ctx, u3, models.CreateSwapRequest{
		ItemRequested: itemA,
		SwapType:      "points",
		PointsOffered: 100,
	})
	assert.ErrorIs(t, err, ErrItemNotAvailable)

	_, err = a.UpdateSwapStatus(ctx, swap.ID, u1, models.UpdateSwapStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 50, db.balance(u2))
	assert.Equal(t, 100, db.balance(u1))
}

func TestNewRequestAllowedAfterSwapCloses(t *testing.T) {
	ctx := context.Background()

	for _, closing := range []struct {
		name   string
		status string
		actor  func(owner, requester int32) int32
	}{
		{name: "rejected by owner", status: "rejected", actor: func(owner, _ int32) int32 { return owner }},
		{name: "cancelled by requester", status: "cancelled", actor: func(_, requester int32) int32 { return requester }},
	} {
		t.Run(closing.name, func(t *testing.T) {
			a, db := newMemoryApp(DirectCompletionNone)
			owner := db.addUser("owner", 0)
			requester := db.addUser("requester", 100)
			item := db.addAvailableItem(owner, 10)
			req := models.CreateSwapRequest{ItemRequested: item, SwapType: "points", PointsOffered: 10}

			first, err := a.CreateSwapRequest(ctx, requester, req)
			require.NoError(t, err)

			_, err = a.UpdateSwapStatus(ctx, first.ID, closing.actor(owner, requester), models.UpdateSwapStatusRequest{Status: closing.status})
			require.NoError(t, err)

			second, err := a.CreateSwapRequest(ctx, requester, req)
			require.NoError(t, err)
			assert.NotEqual(t, first.ID, second.ID)
		})
	}
}

func TestCompletionFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	a, db := newMemoryApp(DirectCompletionNone)

	owner := db.addUser("owner", 0)
	requester := db.addUser("requester", 150)
	item := db.addAvailableItem(owner, 100)

	swap, err := a.CreateSwapRequest(ctx, requester, models.CreateSwapRequest{ItemRequested: item, SwapType: "points", PointsOffered: 100})
	require.NoError(t, err)
	_, err = a.UpdateSwapStatus(ctx, swap.ID, owner, models.UpdateSwapStatusRequest{Status: "accepted"})
	require.NoError(t, err)

	db.failCompletionAfterDebit = true
	_, err = a.UpdateSwapStatus(ctx, swap.ID, owner, models.UpdateSwapStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, errInjected)

	assert.Equal(t, 150, db.balance(requester))
	assert.Equal(t, 0, db.balance(owner))
	assert.Equal(t, models.ItemStatusAvailable, db.item(item).Status)
	assert.True(t, db.item(item).IsAvailable)
	assert.Equal(t, models.SwapStatusAccepted, db.swap(swap.ID).Status)
	assert.Empty(t, db.ledger)

	db.failCompletionAfterDebit = false
	_, err = a.UpdateSwapStatus(ctx, swap.ID, owner, models.UpdateSwapStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, 50, db.balance(requester))
	assert.Equal(t, 100, db.balance(owner))
}

func TestCompletionFailsWhenBalanceDroppedAfterRequest(t *testing.T) {
	ctx := context.Background()
	a, db := newMemoryApp(DirectCompletionNone)

	owner1 := db.addUser("owner1", 0)
	owner2 := db.addUser("owner2", 0)
	requester := db.addUser("requester", 100)
	item1 := db.addAvailableItem(owner1, 80)
	item2 := db.addAvailableItem(owner2, 80)

	first, err := a.CreateSwapRequest(ctx, requester, models.CreateSwapRequest{ItemRequested: item1, SwapType: "points", PointsOffered: 80})
	require.NoError(t, err)
	second, err := a.CreateSwapRequest(ctx, requester, models.CreateSwapRequest{ItemRequested: item2, SwapType: "points", PointsOffered: 80})
	require.NoError(t, err)

	for _, step := range []struct {
		swapID int32
		owner  int32
	}{{first.ID, owner1}, {second.ID, owner2}} {
		_, err = a.UpdateSwapStatus(ctx, step.swapID, step.owner, models.UpdateSwapStatusRequest{Status: "accepted"})
		require.NoError(t, err)
	}

	_, err = a.UpdateSwapStatus(ctx, first.ID, owner1, models.UpdateSwapStatusRequest{Status: "completed"})
	require.NoError(t, err)

	_, err = a.UpdateSwapStatus(ctx, second.ID, owner2, models.UpdateSwapStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 20, db.balance(requester))
	assert.Equal(t, 0, db.balance(owner2))
	assert.Equal(t, models.SwapStatusAccepted, db.swap(second.ID).Status)
	assert.True(t, db.item(item2).IsAvailable)
}

func TestDirectSwapCompletionPolicy(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name           string
		policy         DirectCompletionPolicy
		expectedStatus models.ItemStatus
		expectedAvail  bool
	}{
		{name: "none leaves items untouched", policy: DirectCompletionNone, expectedStatus: models.ItemStatusAvailable, expectedAvail: true},
		{name: "exchange marks both items swapped", policy: DirectCompletionExchange, expectedStatus: models.ItemStatusSwapped, expectedAvail: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, db := newMemoryApp(tc.policy)
			owner := db.addUser("owner", 0)
			requester := db.addUser("requester", 0)
			requested := db.addAvailableItem(owner, 10)
			offered := db.addAvailableItem(requester, 10)

			swap, err := a.CreateSwapRequest(ctx, requester, models.CreateSwapRequest{
				ItemRequested: requested,
				ItemOffered:   offered,
				SwapType:      "direct",
			})
			require.NoError(t, err)
			assert.Equal(t, models.DirectTerms{ItemOffered: offered}, swap.Terms)

			_, err = a.UpdateSwapStatus(ctx, swap.ID, owner, models.UpdateSwapStatusRequest{Status: "accepted"})
			require.NoError(t, err)
			swap, err = a.UpdateSwapStatus(ctx, swap.ID, owner, models.UpdateSwapStatusRequest{Status: "completed"})
			require.NoError(t, err)
			assert.Equal(t, models.SwapStatusCompleted, swap.Status)

			for _, id := range []int32{requested, offered} {
				assert.Equal(t, tc.expectedStatus, db.item(id).Status)
				assert.Equal(t, tc.expectedAvail, db.item(id).IsAvailable)
			}
			assert.Empty(t, db.ledger)
		})
	}
}

func TestModerationGatesAvailability(t *testing.T) {
	ctx := context.Background()
	a, db := newMemoryApp(DirectCompletionNone)

	admin := db.addUser("admin", 0)
	owner := db.addUser("owner", 0)
	requester := db.addUser("requester", 100)

	item, err := a.CreateItem(ctx, owner, models.CreateItemRequest{
		Title:       "Denim jacket",
		Description: "Barely worn",
		Category:    "outerwear",
		Type:        "casual",
		Size:        "M",
		Condition:   "excellent",
		Tags:        []string{"denim"},
		Images:      []string{"jacket.jpg"},
		PointsValue: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusPending, item.Status)

	req := models.CreateSwapRequest{ItemRequested: item.ID, SwapType: "points", PointsOffered: 40}
	_, err = a.CreateSwapRequest(ctx, requester, req)
	assert.ErrorIs(t, err, ErrItemNotAvailable)

	approved, err := a.ApproveItem(ctx, admin, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusAvailable, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin, *approved.ApprovedBy)

	_, err = a.RejectItem(ctx, admin, item.ID, models.RejectItemRequest{Reason: "too late"})
	assert.ErrorIs(t, err, ErrItemNotPending)

	_, err = a.CreateSwapRequest(ctx, requester, req)
	assert.NoError(t, err)
}
