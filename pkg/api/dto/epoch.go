package dto

import (
	"math/big"
	"time"

	"github.com/blockblu-io/rewards-verifier/pkg/db"
)

// All lovelace amounts are rendered as decimal strings.

// EpochResult is the computed outcome of an epoch boundary.
type EpochResult struct {
	// Epoch is the epoch whose boundary has been computed.
	Epoch uint `json:"epoch"`
	// State is the phase of the computation (PRE_ERA_START, ERA_START or
	// STEADY_STATE).
	State   string `json:"state"`
	Network string `json:"network"`
	// Pots are the pots emitted at the boundary.
	Pots Pots `json:"pots"`
	// Rewards breaks down the reward pot of the boundary.
	Rewards RewardSummary `json:"rewards"`
	// Eta is the performance factor applied to the monetary expansion.
	Eta string `json:"eta"`
	// Diagnostics is the number of missing or adjusted inputs recorded while
	// computing the epoch.
	Diagnostics uint      `json:"diagnostics"`
	ComputedAt  time.Time `json:"computedAt"`
}

// Pots are the lovelace pots at an epoch boundary.
type Pots struct {
	Reserves         string `json:"reserves"`
	Treasury         string `json:"treasury"`
	Deposits         string `json:"deposits"`
	Utxo             string `json:"utxo"`
	AdaInCirculation string `json:"adaInCirculation"`
}

// RewardSummary are the aggregated reward amounts of an epoch boundary.
type RewardSummary struct {
	RewardsPot          string `json:"rewardsPot"`
	PoolRewardsPot      string `json:"poolRewardsPot"`
	Distributed         string `json:"distributed"`
	Undistributed       string `json:"undistributed"`
	Unspendable         string `json:"unspendable"`
	UnclaimedRefunds    string `json:"unclaimedRefunds"`
	TreasuryWithdrawals string `json:"treasuryWithdrawals"`
	ReservesWithdrawals string `json:"reservesWithdrawals"`
	TreasuryCut         string `json:"treasuryCut"`
	Fees                string `json:"fees"`
}

// PoolResult is the reward computation of a single pool.
type PoolResult struct {
	Epoch         uint   `json:"epoch"`
	PoolID        string `json:"poolId"`
	RewardAddress string `json:"rewardAddress"`
	// ApparentPerformance relates the produced blocks of the pool to its
	// share of the active stake.
	ApparentPerformance string `json:"apparentPerformance"`
	OptimalReward       string `json:"optimalReward"`
	PoolReward          string `json:"poolReward"`
	OperatorReward      string `json:"operatorReward"`
	DistributedReward   string `json:"distributedReward"`
	UnspendableReward   string `json:"unspendableReward"`
	// Correction is the known anomaly correction applied to the operator
	// reward.
	Correction string `json:"correction"`
	Margin     string `json:"margin"`
	FixedCost  string `json:"fixedCost"`
	// Rewards are only set, when a single pool is requested.
	Rewards []Reward `json:"rewards,omitempty"`
}

// Reward is a payment to a stake address.
type Reward struct {
	Epoch        uint   `json:"epoch"`
	PoolID       string `json:"poolId"`
	StakeAddress string `json:"stakeAddress"`
	// Type is either "leader" or "member".
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

func amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// NewEpochResult transforms the given epoch result from the db package into
// its api representation.
func NewEpochResult(r *db.EpochResult) *EpochResult {
	return &EpochResult{
		Epoch:   r.Epoch,
		State:   r.State,
		Network: r.Network,
		Pots: Pots{
			Reserves:         amount(r.Reserves),
			Treasury:         amount(r.Treasury),
			Deposits:         amount(r.Deposits),
			Utxo:             amount(r.Utxo),
			AdaInCirculation: amount(r.AdaInCirculation),
		},
		Rewards: RewardSummary{
			RewardsPot:          amount(r.RewardsPot),
			PoolRewardsPot:      amount(r.PoolRewardsPot),
			Distributed:         amount(r.DistributedRewards),
			Undistributed:       amount(r.UndistributedRewards),
			Unspendable:         amount(r.UnspendableRewards),
			UnclaimedRefunds:    amount(r.UnclaimedRefunds),
			TreasuryWithdrawals: amount(r.TreasuryWithdrawals),
			ReservesWithdrawals: amount(r.ReservesWithdrawals),
			TreasuryCut:         amount(r.TreasuryCut),
			Fees:                amount(r.Fees),
		},
		Eta:         r.Eta,
		Diagnostics: r.DiagnosticCount,
		ComputedAt:  r.ComputedAt,
	}
}

// NewPoolResult transforms the given pool result from the db package into
// its api representation.
func NewPoolResult(p *db.PoolResult) PoolResult {
	result := PoolResult{
		Epoch:               p.Epoch,
		PoolID:              p.PoolID,
		RewardAddress:       p.RewardAddress,
		ApparentPerformance: p.ApparentPerformance,
		OptimalReward:       amount(p.OptimalReward),
		PoolReward:          amount(p.PoolReward),
		OperatorReward:      amount(p.OperatorReward),
		DistributedReward:   amount(p.DistributedReward),
		UnspendableReward:   amount(p.UnspendableReward),
		Correction:          amount(p.Correction),
		Margin:              p.Margin,
		FixedCost:           amount(p.FixedCost),
	}
	if len(p.Rewards) > 0 {
		result.Rewards = NewRewards(p.Rewards)
	}
	return result
}

// NewPoolResults transforms a list of pool results.
func NewPoolResults(pools []db.PoolResult) []PoolResult {
	results := make([]PoolResult, len(pools))
	for i := range pools {
		results[i] = NewPoolResult(&pools[i])
	}
	return results
}

func NewRewards(rewards []db.Reward) []Reward {
	result := make([]Reward, len(rewards))
	for i, r := range rewards {
		result[i] = Reward{
			Epoch:        r.Epoch,
			PoolID:       r.PoolID,
			StakeAddress: r.StakeAddress,
			Type:         r.Type,
			Amount:       amount(r.Amount),
		}
	}
	return result
}
