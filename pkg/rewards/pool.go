package rewards

import (
	"fmt"
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
)

// PoolRewardInputs are the facts the reward of one pool depends on.
type PoolRewardInputs struct {
	Epoch               int
	Pool                *PoolState
	StakePoolRewardsPot *big.Int
	// AdaInCirculation is the total supply minus the previous reserves. The
	// relative stake and pledge are taken against it.
	AdaInCirculation *big.Int
	// TotalActiveStake and TotalBlocks are the epoch wide values the
	// apparent performance is taken against.
	TotalActiveStake *big.Int
	TotalBlocks      int
	Parameters       *ProtocolParameters
	Facts            *RegistrationFacts
	// SharedRewardAddress is set when another block producing pool uses the
	// same reward address in the epoch.
	SharedRewardAddress bool
}

// CalculateApparentPoolPerformance returns the ratio of the pool's share of
// blocks to its share of the active stake.
func CalculateApparentPoolPerformance(poolStake, totalStake *big.Int, blocks, totalBlocks int, decentralisation decimal.Decimal) decimal.Decimal {
	if era.IsFullyFederated(decentralisation) {
		return numeric.One
	}
	if numeric.IsZero(poolStake) || numeric.IsZero(totalStake) || totalBlocks == 0 {
		return numeric.Zero
	}
	stakeShare := numeric.Divide(numeric.FromLovelace(poolStake), numeric.FromLovelace(totalStake))
	blockShare := numeric.Divide(numeric.FromInt(int64(blocks)), numeric.FromInt(int64(totalBlocks)))
	return numeric.Divide(blockShare, stakeShare)
}

// CalculateOptimalPoolReward returns the reward of a pool with perfect
// performance given its relative stake and pledge.
func CalculateOptimalPoolReward(totalAvailableRewards *big.Int, optimalPoolCount int, influence, relativeStakeOfPool, relativePledgeOfPool decimal.Decimal) *big.Int {
	z0 := numeric.Divide(numeric.One, numeric.FromInt(int64(optimalPoolCount)))
	sigma := numeric.Min(relativeStakeOfPool, z0)
	s := numeric.Min(relativePledgeOfPool, z0)

	rewardsByInfluence := numeric.Divide(numeric.FromLovelace(totalAvailableRewards), numeric.One.Add(influence))
	pledgeShrink := s.Mul(numeric.Divide(z0.Sub(sigma), z0))
	pledgeFactor := s.Mul(influence).Mul(numeric.Divide(sigma.Sub(pledgeShrink), z0))
	return numeric.MultiplyAndFloor(rewardsByInfluence, sigma.Add(pledgeFactor))
}

// CalculatePoolReward scales the optimal reward by the apparent performance.
func CalculatePoolReward(optimalPoolReward *big.Int, apparentPerformance decimal.Decimal) *big.Int {
	return numeric.MultiplyAndFloor(numeric.FromLovelace(optimalPoolReward), apparentPerformance)
}

// CalculateLeaderReward returns the operator's share of the pool reward.
func CalculateLeaderReward(poolReward *big.Int, margin decimal.Decimal, fixedCost *big.Int, relativeOwnerStake, relativeStakeOfPool decimal.Decimal) *big.Int {
	if numeric.LessOrEqual(poolReward, fixedCost) {
		return numeric.Copy(poolReward)
	}
	ownerShare := numeric.Zero
	if !relativeStakeOfPool.IsZero() {
		ownerShare = numeric.Divide(relativeOwnerStake, relativeStakeOfPool)
	}
	factor := margin.Add(numeric.One.Sub(margin).Mul(ownerShare))
	profit := numeric.FromLovelace(numeric.Sub(poolReward, fixedCost))
	return numeric.Add(fixedCost, numeric.MultiplyAndFloor(profit, factor))
}

// CalculateMemberReward returns one member's share of the pool reward.
func CalculateMemberReward(poolReward *big.Int, margin decimal.Decimal, fixedCost *big.Int, relativeMemberStake, relativeStakeOfPool decimal.Decimal) *big.Int {
	if numeric.LessOrEqual(poolReward, fixedCost) || relativeStakeOfPool.IsZero() {
		return new(big.Int)
	}
	profit := numeric.FromLovelace(numeric.Sub(poolReward, fixedCost))
	return numeric.MultiplyAndFloor(profit, numeric.One.Sub(margin), numeric.Divide(relativeMemberStake, relativeStakeOfPool))
}

// delivery is the fate of a reward at the epoch boundary.
type delivery int

const (
	delivered delivery = iota
	// dropped rewards silently return to the reserves.
	dropped
	// withheld rewards of deregistered accounts return to the reserves.
	withheld
	// unspendable rewards go to the treasury.
	unspendable
)

// deliverability decides whether a reward to the address reaches it.
func deliverability(policy *era.Policy, epoch int, facts *RegistrationFacts, address string) delivery {
	switch {
	case has(facts.LateDeregisteredAccounts, address):
		return unspendable
	case has(facts.DeregisteredAccounts, address):
		return withheld
	case !has(facts.RegisteredAccountsUntilNow, address):
		if policy.ForgoRewardPrefilter(epoch) {
			return unspendable
		}
		return dropped
	}
	return delivered
}

func (d delivery) String() string {
	switch d {
	case dropped:
		return "never registered"
	case withheld:
		return "deregistered"
	case unspendable:
		return "unspendable"
	}
	return "delivered"
}

// isMissing reports whether the reward is listed as never paid.
func isMissing(missing []era.MissingReward, address, poolID string, t RewardType) bool {
	for _, m := range missing {
		if m.StakeAddress == address && m.PoolID == poolID && m.Type == t.String() {
			return true
		}
	}
	return false
}

func zeroPoolResult(epoch int, pool *PoolState, poolID string) *PoolRewardResult {
	result := &PoolRewardResult{
		PoolID:                   poolID,
		Epoch:                    epoch,
		ApparentPerformance:      numeric.Zero,
		OptimalPoolReward:        new(big.Int),
		PoolReward:               new(big.Int),
		OperatorReward:           new(big.Int),
		DistributedPoolReward:    new(big.Int),
		UnspendableEarnedRewards: new(big.Int),
		FixedCost:                new(big.Int),
		Correction:               new(big.Int),
	}
	if pool != nil {
		result.RewardAddress = pool.RewardAddress
		result.Margin = pool.Margin
		result.FixedCost = numeric.Copy(pool.FixedCost)
	}
	return result
}

// ComputePoolReward computes the reward of one pool and splits it between
// operator and members. Rewards that can't be delivered are excluded from
// the distributed amount; those owed to the treasury are tracked as
// unspendable.
func ComputePoolReward(policy *era.Policy, in PoolRewardInputs) (*PoolRewardResult, []Diagnostic, error) {
	if in.Pool == nil {
		return nil, nil, fmt.Errorf("%w: pool state", ErrMissingInputs)
	}
	if in.Facts == nil {
		return nil, nil, fmt.Errorf("%w: registration facts", ErrMissingInputs)
	}
	if err := ValidateParameters(in.Parameters); err != nil {
		return nil, nil, err
	}
	if err := ValidatePoolState(in.Pool); err != nil {
		return nil, nil, err
	}
	if numeric.IsZero(in.AdaInCirculation) || in.AdaInCirculation.Sign() < 0 {
		return nil, nil, invalid("epoch %d: ada in circulation must be positive", in.Epoch)
	}

	pool := in.Pool
	params := in.Parameters
	result := zeroPoolResult(in.Epoch, pool, pool.PoolID)
	var diagnostics []Diagnostic
	if pool.BlockCount == 0 {
		return result, nil, nil
	}

	result.ApparentPerformance = CalculateApparentPoolPerformance(pool.ActiveStake, in.TotalActiveStake,
		pool.BlockCount, in.TotalBlocks, params.Decentralisation)

	circulation := numeric.FromLovelace(in.AdaInCirculation)
	relativeStakeOfPool := numeric.Divide(numeric.FromLovelace(pool.ActiveStake), circulation)
	relativePledgeOfPool := numeric.Divide(numeric.FromLovelace(pool.Pledge), circulation)

	result.OptimalPoolReward = CalculateOptimalPoolReward(in.StakePoolRewardsPot, params.OptimalPoolCount,
		params.PoolOwnerInfluence, relativeStakeOfPool, relativePledgeOfPool)
	if numeric.LessThan(pool.OwnerActiveStake, pool.Pledge) {
		// Owners didn't honour the pledge.
		return result, nil, nil
	}
	result.PoolReward = CalculatePoolReward(result.OptimalPoolReward, result.ApparentPerformance)

	relativeOwnerStake := numeric.Divide(numeric.FromLovelace(pool.OwnerActiveStake), circulation)
	operatorReward := CalculateLeaderReward(result.PoolReward, pool.Margin, pool.FixedCost,
		relativeOwnerStake, relativeStakeOfPool)
	if policy.EmulateLeaderRewardBug(in.Epoch) && in.SharedRewardAddress &&
		has(in.Facts.SuppressedLeaderRewards, pool.PoolID) {
		operatorReward = new(big.Int)
	}
	if adj, found := policy.Correction(in.Epoch, pool.PoolID); found {
		operatorReward = numeric.Add(operatorReward, adj.Amount)
		result.Correction = numeric.Copy(adj.Amount)
		diagnostics = append(diagnostics, Diagnostic{
			Kind:    CorrectionApplied,
			PoolID:  pool.PoolID,
			Message: fmt.Sprintf("operator reward adjusted by %s (%s)", adj.Amount, adj.Source),
		})
	}
	result.OperatorReward = operatorReward

	missing := policy.MissingRewards(in.Epoch)
	distributed := new(big.Int)
	unspendableTotal := new(big.Int)
	settle := func(address string, amount *big.Int, t RewardType) bool {
		if amount.Sign() <= 0 {
			return false
		}
		if isMissing(missing, address, pool.PoolID, t) {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:         WithheldReward,
				PoolID:       pool.PoolID,
				StakeAddress: address,
				Message:      fmt.Sprintf("%s reward of %s was never paid", t, amount),
			})
			return false
		}
		switch d := deliverability(policy, in.Epoch, in.Facts, address); d {
		case delivered:
			distributed.Add(distributed, amount)
			return true
		case unspendable:
			unspendableTotal.Add(unspendableTotal, amount)
			fallthrough
		default:
			diagnostics = append(diagnostics, Diagnostic{
				Kind:         WithheldReward,
				PoolID:       pool.PoolID,
				StakeAddress: address,
				Message:      fmt.Sprintf("%s reward of %s not delivered: %s", t, amount, d),
			})
		}
		return false
	}

	result.OperatorRewardDelivered = settle(pool.RewardAddress, operatorReward, RewardTypeLeader)

	excludeRewardAddress := policy.ExcludeRewardAddressFromMembers(in.Epoch)
	for _, delegator := range pool.Delegators {
		if pool.IsOwner(delegator.StakeAddress) {
			continue
		}
		if excludeRewardAddress && delegator.StakeAddress == pool.RewardAddress {
			continue
		}
		if delegator.ActiveStake == nil {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:         MissingDelegatorData,
				PoolID:       pool.PoolID,
				StakeAddress: delegator.StakeAddress,
				Message:      "delegator has no active stake",
			})
			continue
		}
		relativeMemberStake := numeric.Divide(numeric.FromLovelace(delegator.ActiveStake), circulation)
		amount := CalculateMemberReward(result.PoolReward, pool.Margin, pool.FixedCost,
			relativeMemberStake, relativeStakeOfPool)
		if settle(delegator.StakeAddress, amount, RewardTypeMember) {
			result.MemberRewards = append(result.MemberRewards, Reward{
				StakeAddress: delegator.StakeAddress,
				Amount:       amount,
				Type:         RewardTypeMember,
				PoolID:       pool.PoolID,
			})
		}
	}

	result.DistributedPoolReward = distributed
	result.UnspendableEarnedRewards = unspendableTotal
	return result, diagnostics, nil
}

// LeaderReward returns the delivered operator reward as a Reward, or nil.
func (r *PoolRewardResult) LeaderReward() *Reward {
	if !r.OperatorRewardDelivered || r.OperatorReward.Sign() <= 0 {
		return nil
	}
	return &Reward{
		StakeAddress: r.RewardAddress,
		Amount:       r.OperatorReward,
		Type:         RewardTypeLeader,
		PoolID:       r.PoolID,
	}
}
