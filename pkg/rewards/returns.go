package rewards

import (
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/shopspring/decimal"
)

// EpochsPerYear is the number of five day epochs in a year.
var EpochsPerYear = decimal.NewFromInt(73)

// ReturnOnStake returns the annualised return of a reward on the stake that
// earned it in percent, rounded half-even to two places. It is for display
// only and never feeds back into a pot.
func ReturnOnStake(reward, stake *big.Int) decimal.Decimal {
	if numeric.IsZero(stake) {
		return numeric.Zero
	}
	perEpoch := numeric.Divide(numeric.FromLovelace(reward), numeric.FromLovelace(stake))
	return numeric.RoundHalfEven(perEpoch.Mul(EpochsPerYear).Mul(decimal.NewFromInt(100)), 2)
}

// MemberReturnOnStake returns the annualised return of the pool's members.
func (r *PoolRewardResult) MemberReturnOnStake(pool *PoolState) decimal.Decimal {
	if pool == nil {
		return numeric.Zero
	}
	memberStake := new(big.Int)
	memberRewards := new(big.Int)
	for _, d := range pool.Delegators {
		if pool.IsOwner(d.StakeAddress) {
			continue
		}
		memberStake.Add(memberStake, numeric.Copy(d.ActiveStake))
	}
	for _, m := range r.MemberRewards {
		memberRewards.Add(memberRewards, m.Amount)
	}
	return ReturnOnStake(memberRewards, memberStake)
}
