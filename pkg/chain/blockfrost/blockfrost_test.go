package blockfrost

import (
	"context"
	"errors"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockfrost/blockfrost-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers the queries used by the Backend. Any other query
// panics.
type fakeClient struct {
	blockfrost.APIClient
	history      map[string][]blockfrost.PoolHistory
	historyCalls int
	epochs       map[int]blockfrost.Epoch
	params       map[int]blockfrost.EpochParameters
}

var notFound = &blockfrost.APIError{Response: blockfrost.NotFound{}}

func (c *fakeClient) BlockLatest(ctx context.Context) (blockfrost.Block, error) {
	return blockfrost.Block{Height: 9_000_000, Hash: "abc", Epoch: 420, EpochSlot: 12, Slot: 100_000_000,
		Time: 1_690_000_000}, nil
}

func (c *fakeClient) Epoch(ctx context.Context, epoch int) (blockfrost.Epoch, error) {
	e, found := c.epochs[epoch]
	if !found {
		return blockfrost.Epoch{}, notFound
	}
	return e, nil
}

func (c *fakeClient) EpochParameters(ctx context.Context, epoch int) (blockfrost.EpochParameters, error) {
	p, found := c.params[epoch]
	if !found {
		return blockfrost.EpochParameters{}, notFound
	}
	return p, nil
}

func (c *fakeClient) PoolHistory(ctx context.Context, poolID string,
	query blockfrost.APIQueryParams) ([]blockfrost.PoolHistory, error) {
	c.historyCalls++
	history, found := c.history[poolID]
	if !found {
		return nil, notFound
	}
	from := (query.Page - 1) * query.Count
	if from >= len(history) {
		return nil, nil
	}
	to := from + query.Count
	if to > len(history) {
		to = len(history)
	}
	return history[from:to], nil
}

func newTestBackend(t *testing.T, client *fakeClient) *Backend {
	b, err := newBackend(client)
	require.NoError(t, err)
	return b
}

func TestBackend_LatestTip(t *testing.T) {
	b := newTestBackend(t, &fakeClient{})
	tip, err := b.LatestTip(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(420), tip.Epoch)
	assert.Equal(t, uint(12), tip.SlotInEpoch)
	assert.Equal(t, "blockfrost", b.Name())
}

func TestBackend_ProtocolParameters(t *testing.T) {
	client := &fakeClient{params: map[int]blockfrost.EpochParameters{
		298: {Tau: 0.2, Rho: 0.003, A0: 0.3, DecentralisationParam: 0, NOpt: 500, PoolDeposit: "500000000",
			ProtocolMajorVer: 6},
	}}
	b := newTestBackend(t, client)

	params, err := b.ProtocolParameters(context.Background(), 298)
	require.NoError(t, err)
	assert.Equal(t, "0.2", params.TreasuryGrowthRate.String())
	assert.Equal(t, "0.003", params.MonetaryExpandRate.String())
	assert.Equal(t, "0.3", params.PoolOwnerInfluence.String())
	assert.True(t, params.Decentralisation.IsZero())
	assert.Equal(t, 500, params.OptimalPoolCount)
	assert.Equal(t, "500000000", params.PoolDeposit.String())
	assert.Equal(t, 6, params.ProtocolMajorVersion)

	_, err = b.ProtocolParameters(context.Background(), 1)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestBackend_EpochInfo(t *testing.T) {
	client := &fakeClient{
		epochs: map[int]blockfrost.Epoch{
			298: {Epoch: 298, BlockCount: 21_000, Fees: "50000000000"},
			299: {Epoch: 299, BlockCount: 1, Fees: "lots"},
			300: {Epoch: 300, BlockCount: 21_000, Fees: "50000000000"},
		},
		params: map[int]blockfrost.EpochParameters{
			298: {DecentralisationParam: 0},
			299: {DecentralisationParam: 0},
		},
	}
	b := newTestBackend(t, client)

	info, err := b.EpochInfo(context.Background(), 298)
	require.NoError(t, err)
	assert.Equal(t, "50000000000", info.Fees.String())
	assert.Equal(t, 21_000, info.NonOBFTBlockCount)
	assert.Nil(t, info.ActiveStake)

	_, err = b.EpochInfo(context.Background(), 299)
	assert.Error(t, err)
	_, err = b.EpochInfo(context.Background(), 300)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
	_, err = b.EpochInfo(context.Background(), 301)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestBackend_EpochInfoRejectsFederatedEpochs(t *testing.T) {
	client := &fakeClient{
		epochs: map[int]blockfrost.Epoch{250: {Epoch: 250, BlockCount: 21_600, Fees: "40000000000"}},
		params: map[int]blockfrost.EpochParameters{250: {DecentralisationParam: 0.5}},
	}
	info, err := newTestBackend(t, client).EpochInfo(context.Background(), 250)
	assert.ErrorIs(t, err, ErrFederatedEpoch)
	assert.Nil(t, info)
	assert.Contains(t, err.Error(), "d=0.5")
}

func TestBackend_ObservedPoolReward(t *testing.T) {
	history := make([]blockfrost.PoolHistory, 0, 150)
	for epoch := 150; epoch < 300; epoch++ {
		history = append(history, blockfrost.PoolHistory{Epoch: epoch, Rewards: "25629119398", Fees: "1589282498"})
	}
	client := &fakeClient{history: map[string][]blockfrost.PoolHistory{"pool1test": history}}
	b := newTestBackend(t, client)
	ctx := context.Background()

	observed, err := b.ObservedPoolReward(ctx, 300, "pool1test")
	require.NoError(t, err)
	assert.Equal(t, 300, observed.Epoch)
	assert.Equal(t, "25629119398", observed.Rewards.String())
	assert.Equal(t, "1589282498", observed.Fees.String())
	assert.Equal(t, 2, client.historyCalls)

	_, err = b.ObservedPoolReward(ctx, 250, "pool1test")
	require.NoError(t, err)
	assert.Equal(t, 2, client.historyCalls)

	// Missing epochs are queried once more before giving up.
	_, err = b.ObservedPoolReward(ctx, 400, "pool1test")
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
	assert.Equal(t, 4, client.historyCalls)

	_, err = b.ObservedPoolReward(ctx, 300, "pool1unknown")
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(notFound))
	assert.False(t, isNotFound(&blockfrost.APIError{Response: "boom"}))
	assert.False(t, isNotFound(errors.New("boom")))
}
