package db

import (
	"math/big"
	"time"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
)

// EpochResult is the stored outcome of one epoch boundary.
type EpochResult struct {
	// Epoch is the epoch whose boundary has been computed.
	Epoch uint
	// State is the phase of the computation, e.g. STEADY_STATE.
	State string
	// Network is the name of the network the result was computed for.
	Network string
	// Reserves, Treasury, Deposits, Utxo and AdaInCirculation are the pots
	// at the boundary.
	Reserves         *big.Int
	Treasury         *big.Int
	Deposits         *big.Int
	Utxo             *big.Int
	AdaInCirculation *big.Int
	// RewardsPot is the total reward pot including the treasury cut.
	RewardsPot            *big.Int
	PoolRewardsPot        *big.Int
	DistributedRewards    *big.Int
	UndistributedRewards  *big.Int
	UnspendableRewards    *big.Int
	UnclaimedRefunds      *big.Int
	TreasuryWithdrawals   *big.Int
	ReservesWithdrawals   *big.Int
	TreasuryCut           *big.Int
	Fees                  *big.Int
	// Eta is kept in its exact decimal representation.
	Eta string
	// DiagnosticCount is the number of diagnostics recorded while computing.
	DiagnosticCount uint
	// ComputedAt is the time at which the result has been computed.
	ComputedAt time.Time
	// Pools are the pool results of the epoch. They are only set when
	// writing a result.
	Pools []PoolResult
}

// PoolResult is the stored reward computation of one pool.
type PoolResult struct {
	Epoch               uint
	PoolID              string
	RewardAddress       string
	ApparentPerformance string
	OptimalReward       *big.Int
	PoolReward          *big.Int
	OperatorReward      *big.Int
	DistributedReward   *big.Int
	UnspendableReward   *big.Int
	Correction          *big.Int
	Margin              string
	FixedCost           *big.Int
	// Rewards are the delivered leader and member rewards of the pool.
	Rewards []Reward
}

// Reward is a stored payment to a stake address.
type Reward struct {
	Epoch        uint
	PoolID       string
	StakeAddress string
	// Type is either "leader" or "member".
	Type   string
	Amount *big.Int
}

// NewEpochResult converts a computed result into its stored form.
func NewEpochResult(network string, r *rewards.EpochResult, computedAt time.Time) *EpochResult {
	result := &EpochResult{
		Epoch:                uint(r.Epoch),
		State:                r.State.String(),
		Network:              network,
		Reserves:             r.Reserves,
		Treasury:             r.Treasury,
		Deposits:             r.Deposits,
		Utxo:                 r.Utxo,
		AdaInCirculation:     r.AdaInCirculation,
		RewardsPot:           r.TotalRewardsPot,
		PoolRewardsPot:       r.TotalPoolRewardsPot,
		DistributedRewards:   r.TotalDistributedRewards,
		UndistributedRewards: r.TotalUndistributedRewards,
		UnspendableRewards:   r.TotalUnspendableEarnedRewards,
		UnclaimedRefunds:     r.TotalUnclaimedRefunds,
		TreasuryWithdrawals:  r.TreasuryWithdrawals,
		ReservesWithdrawals:  r.ReservesWithdrawals,
		TreasuryCut:          r.TreasuryCut,
		Fees:                 r.Fees,
		Eta:                  r.Eta.String(),
		DiagnosticCount:      uint(len(r.Diagnostics)),
		ComputedAt:           computedAt,
	}
	for _, p := range r.PerPoolResults {
		pool := PoolResult{
			Epoch:               uint(r.Epoch),
			PoolID:              p.PoolID,
			RewardAddress:       p.RewardAddress,
			ApparentPerformance: p.ApparentPerformance.String(),
			OptimalReward:       p.OptimalPoolReward,
			PoolReward:          p.PoolReward,
			OperatorReward:      p.OperatorReward,
			DistributedReward:   p.DistributedPoolReward,
			UnspendableReward:   p.UnspendableEarnedRewards,
			Correction:          p.Correction,
			Margin:              p.Margin.String(),
			FixedCost:           p.FixedCost,
		}
		if leader := p.LeaderReward(); leader != nil {
			pool.Rewards = append(pool.Rewards, newReward(r.Epoch, leader))
		}
		for i := range p.MemberRewards {
			pool.Rewards = append(pool.Rewards, newReward(r.Epoch, &p.MemberRewards[i]))
		}
		result.Pools = append(result.Pools, pool)
	}
	return result
}

func newReward(epoch int, r *rewards.Reward) Reward {
	return Reward{
		Epoch:        uint(epoch),
		PoolID:       r.PoolID,
		StakeAddress: r.StakeAddress,
		Type:         r.Type.String(),
		Amount:       r.Amount,
	}
}

// AdaPots returns the pots of the stored result, which are the previous pots
// of the next epoch.
func (r *EpochResult) AdaPots() *rewards.AdaPots {
	return &rewards.AdaPots{
		Epoch:            int(r.Epoch),
		Reserves:         r.Reserves,
		Treasury:         r.Treasury,
		RewardsPot:       r.RewardsPot,
		Deposits:         r.Deposits,
		Utxo:             r.Utxo,
		AdaInCirculation: r.AdaInCirculation,
	}
}
