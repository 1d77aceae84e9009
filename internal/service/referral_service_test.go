package service

import (
	"context"
	"testing"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userGetter(users map[int64]*domain.User) func(context.Context, int64) (*domain.User, error) {
	return func(_ context.Context, id int64) (*domain.User, error) {
		u, ok := users[id]
		if !ok {
			return nil, pgx.ErrNoRows
		}
		return u, nil
	}
}

func ref(id int64, referredBy *int64) *domain.User {
	return &domain.User{ID: id, ReferredBy: referredBy}
}

func ptr(v int64) *int64 { return &v }

func TestChainEdges_FullChain(t *testing.T) {
	// D registers via C; C was referred by B, B by A
	users := map[int64]*domain.User{
		1: ref(1, nil),     // A
		2: ref(2, ptr(1)),  // B
		3: ref(3, ptr(2)),  // C
	}

	edges, err := ChainEdges(context.Background(), 4, 3, userGetter(users))
	require.NoError(t, err)
	require.Len(t, edges, 3)

	assert.Equal(t, int64(3), edges[0].ReferrerID)
	assert.Equal(t, 1, edges[0].Level)
	assert.True(t, edges[0].Commission.Equal(decimal.RequireFromString("10.00")))

	assert.Equal(t, int64(2), edges[1].ReferrerID)
	assert.Equal(t, 2, edges[1].Level)
	assert.True(t, edges[1].Commission.Equal(decimal.RequireFromString("5.00")))

	assert.Equal(t, int64(1), edges[2].ReferrerID)
	assert.Equal(t, 3, edges[2].Level)
	assert.True(t, edges[2].Commission.Equal(decimal.RequireFromString("2.00")))

	for _, e := range edges {
		assert.Equal(t, int64(4), e.ReferredID)
	}
}

func TestChainEdges_DepthCapped(t *testing.T) {
	// chain deeper than three levels stops at MaxReferralDepth
	users := map[int64]*domain.User{
		1: ref(1, nil),
		2: ref(2, ptr(1)),
		3: ref(3, ptr(2)),
		4: ref(4, ptr(3)),
		5: ref(5, ptr(4)),
	}

	edges, err := ChainEdges(context.Background(), 6, 5, userGetter(users))
	require.NoError(t, err)
	assert.Len(t, edges, domain.MaxReferralDepth)
	assert.Equal(t, int64(5), edges[0].ReferrerID)
	assert.Equal(t, int64(3), edges[2].ReferrerID)
}

func TestChainEdges_MissingAncestorStopsWalk(t *testing.T) {
	// B points at a deleted ancestor; the walk ends after B's edge
	users := map[int64]*domain.User{
		2: ref(2, ptr(99)),
	}

	edges, err := ChainEdges(context.Background(), 4, 2, userGetter(users))
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, int64(2), edges[0].ReferrerID)
	assert.Equal(t, 1, edges[0].Level)
}

func TestChainEdges_UnknownReferrer(t *testing.T) {
	edges, err := ChainEdges(context.Background(), 4, 42, userGetter(nil))
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestChainEdges_NoAncestors(t *testing.T) {
	users := map[int64]*domain.User{
		7: ref(7, nil),
	}

	edges, err := ChainEdges(context.Background(), 8, 7, userGetter(users))
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 1, edges[0].Level)
}

func TestReferralCommission_Levels(t *testing.T) {
	assert.True(t, domain.ReferralCommission(1).Equal(decimal.RequireFromString("10.00")))
	assert.True(t, domain.ReferralCommission(2).Equal(decimal.RequireFromString("5.00")))
	assert.True(t, domain.ReferralCommission(3).Equal(decimal.RequireFromString("2.00")))
	assert.True(t, domain.ReferralCommission(4).IsZero())
	assert.True(t, domain.ReferralCommission(0).IsZero())
}
