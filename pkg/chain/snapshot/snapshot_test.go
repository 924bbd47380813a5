package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider("testdata")
	require.NoError(t, err)
	return p
}

func TestProvider_Sections(t *testing.T) {
	ctx := context.Background()
	p := testProvider(t)
	assert.Equal(t, "snapshot", p.Name())

	params, err := p.ProtocolParameters(ctx, 298)
	require.NoError(t, err)
	assert.Equal(t, 298, params.Epoch)
	assert.Equal(t, 500, params.OptimalPoolCount)
	assert.Equal(t, "0.003", params.MonetaryExpandRate.String())
	assert.Equal(t, "500000000", params.PoolDeposit.String())

	info, err := p.EpochInfo(ctx, 298)
	require.NoError(t, err)
	assert.Equal(t, 21000, info.NonOBFTBlockCount)
	assert.Equal(t, "22000000000000000", info.ActiveStake.String())

	pools, err := p.PoolStates(ctx, 298)
	require.NoError(t, err)
	require.Contains(t, pools, "pool1test")
	pool := pools["pool1test"]
	assert.Equal(t, 298, pool.Epoch)
	assert.True(t, pool.IsOwner("stake1owner"))
	assert.Equal(t, "1200000000000", pool.OwnerActiveStake.String())
	assert.Len(t, pool.Delegators, 3)

	pots, err := p.AdaPots(ctx, 299)
	require.NoError(t, err)
	assert.Equal(t, "14000000000000000", pots.Reserves.String())
	assert.Equal(t, "0", pots.AdaInCirculation.String())

	registrations, err := p.PoolRegistrations(ctx, 299)
	require.NoError(t, err)
	require.Len(t, registrations, 1)
	assert.Equal(t, "pool1new", registrations[0].PoolID)
	assert.Equal(t, "500000000", registrations[0].Deposit.String())

	certificates, err := p.PoolCertificates(ctx, 300)
	require.NoError(t, err)
	require.Len(t, certificates, 2)
	assert.Equal(t, rewards.PoolRetirementCertificate, certificates[1].Kind)

	events, err := p.AccountEvents(ctx, 300, []string{"stake1bob", "stake1nobody"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, rewards.AccountDeregistration, events[1].Kind)

	observed, err := p.ObservedPoolReward(ctx, 300, "pool1test")
	require.NoError(t, err)
	assert.Equal(t, "25629119398", observed.Rewards.String())
	assert.Equal(t, "1589282498", observed.Fees.String())
	_, err = p.ObservedPoolReward(ctx, 300, "pool1unknown")
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestProvider_MissingData(t *testing.T) {
	ctx := context.Background()
	p := testProvider(t)

	_, err := p.ProtocolParameters(ctx, 299)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
	_, err = p.EpochInfo(ctx, 300)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
	_, err = p.AdaPots(ctx, 10)
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestProvider_EpochsAndTip(t *testing.T) {
	p := testProvider(t)
	epochs, err := p.Epochs()
	require.NoError(t, err)
	assert.Equal(t, []int{298, 299, 300}, epochs)

	tip, err := p.LatestTip(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(300), tip.Epoch)

	empty, err := NewProvider(t.TempDir())
	require.NoError(t, err)
	_, err = empty.LatestTip(context.Background())
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)
}

func TestProvider_Rejects(t *testing.T) {
	ctx := context.Background()
	_, err := NewProvider(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	write := func(epoch int, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "epoch-"+strconv.Itoa(epoch)+".json"), []byte(content), 0644))
	}
	write(1, `{"epoch": 2}`)
	write(3, `{"epoch": 3, "pools": [`)
	write(4, `{"epoch": 4, "mirCertificates": [{"pot": "elsewhere", "totalRewards": 1}]}`)
	write(5, `{"epoch": 5, "pools": [{"poolId": "pool1a"}, {"poolId": "pool1a"}]}`)
	p, err := NewProvider(dir)
	require.NoError(t, err)

	_, err = p.AdaPots(ctx, 1)
	assert.Error(t, err)
	_, err = p.AdaPots(ctx, 3)
	assert.Error(t, err)
	_, err = p.MirCertificates(ctx, 4)
	assert.Error(t, err)
	_, err = p.PoolStates(ctx, 5)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.PoolStates(cancelled, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_ComputesEpoch(t *testing.T) {
	ctx := context.Background()
	p := testProvider(t)
	policy := era.NewPolicy(era.Mainnet())
	cache, err := chain.NewEpochCache(p, 16)
	require.NoError(t, err)

	in, err := chain.Collect(ctx, cache, policy, 300, nil)
	require.NoError(t, err)
	result, err := rewards.NewEngine(policy, 2).ComputeEpoch(ctx, in)
	require.NoError(t, err)

	observed, err := p.AdaPots(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, observed.Reserves.String(), result.Reserves.String())
	assert.Equal(t, observed.Treasury.String(), result.Treasury.String())
	assert.Equal(t, observed.AdaInCirculation.String(), result.AdaInCirculation.String())
	assert.Equal(t, "500000000", result.TotalUnclaimedRefunds.String())
	require.Len(t, result.PerPoolResults, 1)
	assert.Equal(t, "25629119398", result.PerPoolResults[0].PoolReward.String())
}

func TestProvider_BlockProducers(t *testing.T) {
	ctx := context.Background()
	p := testProvider(t)
	producers, err := p.BlockProducers(ctx, 298)
	require.NoError(t, err)
	assert.Equal(t, []string{"pool1test"}, producers)

	dir := t.TempDir()
	content := `{"epoch": 7, "pools": [
		{"poolId": "pool1b", "blockCount": 2},
		{"poolId": "pool1idle", "blockCount": 0},
		{"poolId": "pool1a", "blockCount": 1}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "epoch-7.json"), []byte(content), 0644))
	fallback, err := NewProvider(dir)
	require.NoError(t, err)
	producers, err = fallback.BlockProducers(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"pool1a", "pool1b"}, producers)
}

func TestProvider_ProducerWithoutPoolState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, epoch := range []int{298, 299, 300} {
		name := "epoch-" + strconv.Itoa(epoch) + ".json"
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		if epoch == 298 {
			data = []byte(strings.Replace(string(data), `"blockProducers": ["pool1test"]`,
				`"blockProducers": ["pool1test", "pool1ghost"]`, 1))
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	p, err := NewProvider(dir)
	require.NoError(t, err)
	policy := era.NewPolicy(era.Mainnet())

	in, err := chain.Collect(ctx, p, policy, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"pool1ghost", "pool1test"}, in.BlockProducers)
	result, err := rewards.NewEngine(policy, 2).ComputeEpoch(ctx, in)
	require.NoError(t, err)

	require.Len(t, result.PerPoolResults, 2)
	assert.Equal(t, "pool1ghost", result.PerPoolResults[0].PoolID)
	assert.Equal(t, "0", result.PerPoolResults[0].PoolReward.String())
	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, rewards.MissingPoolState, result.Diagnostics[0].Kind)
	assert.Equal(t, "pool1ghost", result.Diagnostics[0].PoolID)

	observed, err := p.AdaPots(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, observed.Reserves.String(), result.Reserves.String())
}
