package rewards

import (
	"math/big"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOptimalReward = "29919477488"
	testPoolReward    = "23508160883"
	testLeaderReward  = "1484507147"
	testAliceReward   = "11352398832"
	testBobReward     = "10671254902"
)

func poolInputs(t *testing.T, epoch int, pool *PoolState, facts *RegistrationFacts) PoolRewardInputs {
	return PoolRewardInputs{
		Epoch:               epoch,
		Pool:                pool,
		StakePoolRewardsPot: lovelace(t, "30000000000000"),
		AdaInCirculation:    lovelace(t, "31000000000000000"),
		TotalActiveStake:    lovelace(t, "22000000000000000"),
		TotalBlocks:         21_000,
		Parameters:          testParameters(),
		Facts:               facts,
	}
}

func memberAmounts(result *PoolRewardResult) map[string]string {
	amounts := map[string]string{}
	for _, m := range result.MemberRewards {
		amounts[m.StakeAddress] = m.Amount.String()
	}
	return amounts
}

func TestComputePoolReward(t *testing.T) {
	facts := registeredFacts("stake1reward", "stake1owner", "stake1alice", "stake1bob")
	result, diagnostics, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, testPool(t), facts))
	require.NoError(t, err)
	assert.Empty(t, diagnostics)

	assert.True(t, result.ApparentPerformance.Equal(dec("0.785714285714285714285714285714")))
	assert.Equal(t, testOptimalReward, result.OptimalPoolReward.String())
	assert.Equal(t, testPoolReward, result.PoolReward.String())
	assert.Equal(t, testLeaderReward, result.OperatorReward.String())
	assert.True(t, result.OperatorRewardDelivered)
	assert.Equal(t, map[string]string{
		"stake1alice": testAliceReward,
		"stake1bob":   testBobReward,
	}, memberAmounts(result))
	assert.Equal(t, "23508160881", result.DistributedPoolReward.String())
	assert.Equal(t, "0", result.UnspendableEarnedRewards.String())

	leader := result.LeaderReward()
	require.NotNil(t, leader)
	assert.Equal(t, "stake1reward", leader.StakeAddress)
	assert.Equal(t, RewardTypeLeader, leader.Type)
}

func TestComputePoolReward_SplitNeverExceedsPoolReward(t *testing.T) {
	facts := registeredFacts("stake1reward", "stake1owner", "stake1alice", "stake1bob")
	for _, margin := range []string{"0", "0.02", "0.5", "1"} {
		pool := testPool(t)
		pool.Margin = dec(margin)
		result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, facts))
		require.NoError(t, err)
		total := numeric.Copy(result.OperatorReward)
		for _, m := range result.MemberRewards {
			total.Add(total, m.Amount)
		}
		assert.True(t, numeric.LessOrEqual(total, result.PoolReward), "margin %s", margin)
	}
}

func TestComputePoolReward_NoBlocks(t *testing.T) {
	pool := testPool(t)
	pool.BlockCount = 0
	result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, registeredFacts()))
	require.NoError(t, err)
	assert.True(t, result.ApparentPerformance.IsZero())
	assert.Equal(t, "0", result.OptimalPoolReward.String())
	assert.Equal(t, "0", result.PoolReward.String())
	assert.Equal(t, "0", result.OperatorReward.String())
	assert.Equal(t, "0", result.DistributedPoolReward.String())
	assert.Empty(t, result.MemberRewards)
}

func TestComputePoolReward_PledgeNotMet(t *testing.T) {
	pool := testPool(t)
	pool.OwnerActiveStake = lovelace(t, "999999999999")
	result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, registeredFacts()))
	require.NoError(t, err)
	assert.Equal(t, testOptimalReward, result.OptimalPoolReward.String())
	assert.False(t, result.ApparentPerformance.IsZero())
	assert.Equal(t, "0", result.PoolReward.String())
	assert.Equal(t, "0", result.DistributedPoolReward.String())
}

func TestComputePoolReward_RewardBelowFixedCost(t *testing.T) {
	pool := testPool(t)
	pool.FixedCost = lovelace(t, "30000000000")
	facts := registeredFacts("stake1reward", "stake1alice", "stake1bob")
	result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, facts))
	require.NoError(t, err)
	assert.Equal(t, testPoolReward, result.OperatorReward.String())
	assert.Empty(t, result.MemberRewards)
	assert.Equal(t, testPoolReward, result.DistributedPoolReward.String())
}

func TestComputePoolReward_RewardAddressAsMember(t *testing.T) {
	pool := testPool(t)
	pool.Delegators = append(pool.Delegators, Delegator{StakeAddress: "stake1reward", ActiveStake: lovelace(t, "1000000000000")})
	facts := registeredFacts("stake1reward", "stake1owner", "stake1alice", "stake1bob")

	before, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 230, pool, facts))
	require.NoError(t, err)
	assert.NotContains(t, memberAmounts(before), "stake1reward")

	after, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, facts))
	require.NoError(t, err)
	assert.Contains(t, memberAmounts(after), "stake1reward")
}

func TestComputePoolReward_SharedRewardAddressSuppression(t *testing.T) {
	facts := registeredFacts("stake1reward", "stake1owner", "stake1alice", "stake1bob")
	facts.SuppressedLeaderRewards = NewSet("pool1test")

	in := poolInputs(t, 230, testPool(t), facts)
	in.SharedRewardAddress = true
	result, _, err := ComputePoolReward(mainnetPolicy(), in)
	require.NoError(t, err)
	assert.Equal(t, "0", result.OperatorReward.String())
	assert.Nil(t, result.LeaderReward())
	assert.Equal(t, testAliceReward, memberAmounts(result)["stake1alice"])

	in.SharedRewardAddress = false
	result, _, err = ComputePoolReward(mainnetPolicy(), in)
	require.NoError(t, err)
	assert.NotEqual(t, "0", result.OperatorReward.String())

	in = poolInputs(t, 300, testPool(t), facts)
	in.SharedRewardAddress = true
	result, _, err = ComputePoolReward(mainnetPolicy(), in)
	require.NoError(t, err)
	assert.Equal(t, testLeaderReward, result.OperatorReward.String())
}

func TestComputePoolReward_Deliverability(t *testing.T) {
	facts := &RegistrationFacts{
		AccountsRegisteredInThePast: NewSet("stake1owner", "stake1alice", "stake1bob"),
		RegisteredAccountsUntilNow:  NewSet("stake1owner", "stake1bob"),
		DeregisteredAccounts:        NewSet("stake1alice"),
		LateDeregisteredAccounts:    NewSet("stake1bob"),
	}

	t.Run("before the prefilter was forgone", func(t *testing.T) {
		result, diagnostics, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, testPool(t), facts))
		require.NoError(t, err)
		// Never registered reward address: dropped. Alice: withheld.
		// Bob: unspendable.
		assert.False(t, result.OperatorRewardDelivered)
		assert.Empty(t, result.MemberRewards)
		assert.Equal(t, "0", result.DistributedPoolReward.String())
		assert.Equal(t, testBobReward, result.UnspendableEarnedRewards.String())
		assert.Len(t, diagnostics, 3)
	})

	t.Run("after the prefilter was forgone", func(t *testing.T) {
		result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 400, testPool(t), facts))
		require.NoError(t, err)
		want := numeric.Add(lovelace(t, testBobReward), lovelace(t, testLeaderReward))
		assert.Equal(t, want.String(), result.UnspendableEarnedRewards.String())
		assert.Equal(t, "0", result.DistributedPoolReward.String())
	})
}

func TestComputePoolReward_KnownAnomalies(t *testing.T) {
	network := era.Mainnet()
	network.Corrections = &era.Corrections{
		Version: "test",
		PoolAdjustment: map[era.PoolEpoch]era.Adjustment{
			{Epoch: 300, PoolID: "pool1test"}: {Amount: big.NewInt(5), Source: "test"},
		},
		MissingRewards: map[int][]era.MissingReward{
			300: {{StakeAddress: "stake1alice", PoolID: "pool1test", Type: "member", Source: "test"}},
		},
	}
	policy := era.NewPolicy(network)
	facts := registeredFacts("stake1reward", "stake1owner", "stake1alice", "stake1bob")

	result, diagnostics, err := ComputePoolReward(policy, poolInputs(t, 300, testPool(t), facts))
	require.NoError(t, err)
	assert.Equal(t, "1484507152", result.OperatorReward.String())
	assert.Equal(t, "5", result.Correction.String())
	assert.NotContains(t, memberAmounts(result), "stake1alice")
	assert.Equal(t, testBobReward, memberAmounts(result)["stake1bob"])
	require.Len(t, diagnostics, 2)
	assert.Equal(t, CorrectionApplied, diagnostics[0].Kind)
	assert.Equal(t, WithheldReward, diagnostics[1].Kind)
}

func TestComputePoolReward_InvalidPool(t *testing.T) {
	pool := testPool(t)
	pool.Margin = dec("1.1")
	_, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, pool, registeredFacts()))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, nil, registeredFacts()))
	assert.ErrorIs(t, err, ErrMissingInputs)
}

func TestComputePoolReward_WithoutRegistrationFacts(t *testing.T) {
	result, _, err := ComputePoolReward(mainnetPolicy(), poolInputs(t, 300, testPool(t), nil))
	assert.ErrorIs(t, err, ErrMissingInputs)
	assert.Nil(t, result)
}

func TestCalculateApparentPoolPerformance(t *testing.T) {
	total := lovelace(t, "22000000000000000")
	assert.True(t, CalculateApparentPoolPerformance(big.NewInt(0), total, 0, 1000, dec("0.5")).IsZero())
	assert.True(t, CalculateApparentPoolPerformance(big.NewInt(0), total, 0, 1000, dec("0.9")).Equal(decimal.NewFromInt(1)))
	assert.True(t, CalculateApparentPoolPerformance(big.NewInt(5), big.NewInt(0), 3, 1000, dec("0.9")).Equal(decimal.NewFromInt(1)))
	assert.True(t, CalculateApparentPoolPerformance(big.NewInt(10), big.NewInt(100), 1, 10, decimal.Zero).Equal(decimal.NewFromInt(1)))
}

func TestCalculateOptimalPoolReward_Saturation(t *testing.T) {
	pot := lovelace(t, "30000000000000")
	influence := dec("0.3")
	pledge := dec("0.0001")
	z0 := dec("0.002")

	previous := new(big.Int)
	for _, sigma := range []string{"0.0001", "0.0005", "0.001", "0.0015", "0.002"} {
		reward := CalculateOptimalPoolReward(pot, 500, influence, dec(sigma), pledge)
		assert.True(t, numeric.LessOrEqual(previous, reward), "sigma %s", sigma)
		previous = reward
	}
	saturated := CalculateOptimalPoolReward(pot, 500, influence, z0, pledge)
	for _, sigma := range []string{"0.0021", "0.01", "0.5"} {
		assert.Equal(t, saturated.String(), CalculateOptimalPoolReward(pot, 500, influence, dec(sigma), pledge).String())
	}
}

func TestCalculateMemberReward_BelowCost(t *testing.T) {
	reward := CalculateMemberReward(big.NewInt(100), dec("0.1"), big.NewInt(100), dec("0.5"), dec("0.5"))
	assert.Equal(t, "0", reward.String())
	leader := CalculateLeaderReward(big.NewInt(100), dec("0.1"), big.NewInt(150), dec("0.5"), dec("0.5"))
	assert.Equal(t, "100", leader.String())
}
