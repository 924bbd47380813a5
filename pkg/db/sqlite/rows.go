package sqlite

import (
	"fmt"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"math/big"
	"time"
)

type epochRow struct {
	Epoch                uint      `db:"epoch"`
	State                string    `db:"state"`
	Network              string    `db:"network"`
	Reserves             string    `db:"reserves"`
	Treasury             string    `db:"treasury"`
	Deposits             string    `db:"deposits"`
	Utxo                 string    `db:"utxo"`
	AdaInCirculation     string    `db:"adaInCirculation"`
	RewardsPot           string    `db:"rewardsPot"`
	PoolRewardsPot       string    `db:"poolRewardsPot"`
	DistributedRewards   string    `db:"distributedRewards"`
	UndistributedRewards string    `db:"undistributedRewards"`
	UnspendableRewards   string    `db:"unspendableRewards"`
	UnclaimedRefunds     string    `db:"unclaimedRefunds"`
	TreasuryWithdrawals  string    `db:"treasuryWithdrawals"`
	ReservesWithdrawals  string    `db:"reservesWithdrawals"`
	TreasuryCut          string    `db:"treasuryCut"`
	Fees                 string    `db:"fees"`
	Eta                  string    `db:"eta"`
	Diagnostics          uint      `db:"diagnostics"`
	ComputedAt           time.Time `db:"computedAt"`
}

type poolRow struct {
	Epoch               uint   `db:"epoch"`
	PoolID              string `db:"poolID"`
	RewardAddress       string `db:"rewardAddress"`
	ApparentPerformance string `db:"apparentPerformance"`
	OptimalReward       string `db:"optimalReward"`
	PoolReward          string `db:"poolReward"`
	OperatorReward      string `db:"operatorReward"`
	DistributedReward   string `db:"distributedReward"`
	UnspendableReward   string `db:"unspendableReward"`
	Correction          string `db:"correction"`
	Margin              string `db:"margin"`
	FixedCost           string `db:"fixedCost"`
}

type rewardRow struct {
	Epoch        uint   `db:"epoch"`
	PoolID       string `db:"poolID"`
	StakeAddress string `db:"stakeAddress"`
	Type         string `db:"type"`
	Amount       string `db:"amount"`
}

func amountText(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}

// amountParser parses the stored decimal text of amounts and remembers the
// first failure.
type amountParser struct {
	err error
}

func (p *amountParser) parse(column, text string) *big.Int {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		if p.err == nil {
			p.err = fmt.Errorf("column %s holds an invalid amount '%s'", column, text)
		}
		return new(big.Int)
	}
	return v
}

func newEpochRow(r *db.EpochResult) *epochRow {
	return &epochRow{
		Epoch:                r.Epoch,
		State:                r.State,
		Network:              r.Network,
		Reserves:             amountText(r.Reserves),
		Treasury:             amountText(r.Treasury),
		Deposits:             amountText(r.Deposits),
		Utxo:                 amountText(r.Utxo),
		AdaInCirculation:     amountText(r.AdaInCirculation),
		RewardsPot:           amountText(r.RewardsPot),
		PoolRewardsPot:       amountText(r.PoolRewardsPot),
		DistributedRewards:   amountText(r.DistributedRewards),
		UndistributedRewards: amountText(r.UndistributedRewards),
		UnspendableRewards:   amountText(r.UnspendableRewards),
		UnclaimedRefunds:     amountText(r.UnclaimedRefunds),
		TreasuryWithdrawals:  amountText(r.TreasuryWithdrawals),
		ReservesWithdrawals:  amountText(r.ReservesWithdrawals),
		TreasuryCut:          amountText(r.TreasuryCut),
		Fees:                 amountText(r.Fees),
		Eta:                  r.Eta,
		Diagnostics:          r.DiagnosticCount,
		ComputedAt:           r.ComputedAt.UTC(),
	}
}

func (row *epochRow) toEpochResult() (*db.EpochResult, error) {
	p := &amountParser{}
	r := &db.EpochResult{
		Epoch:                row.Epoch,
		State:                row.State,
		Network:              row.Network,
		Reserves:             p.parse("reserves", row.Reserves),
		Treasury:             p.parse("treasury", row.Treasury),
		Deposits:             p.parse("deposits", row.Deposits),
		Utxo:                 p.parse("utxo", row.Utxo),
		AdaInCirculation:     p.parse("adaInCirculation", row.AdaInCirculation),
		RewardsPot:           p.parse("rewardsPot", row.RewardsPot),
		PoolRewardsPot:       p.parse("poolRewardsPot", row.PoolRewardsPot),
		DistributedRewards:   p.parse("distributedRewards", row.DistributedRewards),
		UndistributedRewards: p.parse("undistributedRewards", row.UndistributedRewards),
		UnspendableRewards:   p.parse("unspendableRewards", row.UnspendableRewards),
		UnclaimedRefunds:     p.parse("unclaimedRefunds", row.UnclaimedRefunds),
		TreasuryWithdrawals:  p.parse("treasuryWithdrawals", row.TreasuryWithdrawals),
		ReservesWithdrawals:  p.parse("reservesWithdrawals", row.ReservesWithdrawals),
		TreasuryCut:          p.parse("treasuryCut", row.TreasuryCut),
		Fees:                 p.parse("fees", row.Fees),
		Eta:                  row.Eta,
		DiagnosticCount:      row.Diagnostics,
		ComputedAt:           row.ComputedAt,
	}
	return r, p.err
}

func newPoolRow(r *db.PoolResult) *poolRow {
	return &poolRow{
		Epoch:               r.Epoch,
		PoolID:              r.PoolID,
		RewardAddress:       r.RewardAddress,
		ApparentPerformance: r.ApparentPerformance,
		OptimalReward:       amountText(r.OptimalReward),
		PoolReward:          amountText(r.PoolReward),
		OperatorReward:      amountText(r.OperatorReward),
		DistributedReward:   amountText(r.DistributedReward),
		UnspendableReward:   amountText(r.UnspendableReward),
		Correction:          amountText(r.Correction),
		Margin:              r.Margin,
		FixedCost:           amountText(r.FixedCost),
	}
}

func (row *poolRow) toPoolResult() (db.PoolResult, error) {
	p := &amountParser{}
	r := db.PoolResult{
		Epoch:               row.Epoch,
		PoolID:              row.PoolID,
		RewardAddress:       row.RewardAddress,
		ApparentPerformance: row.ApparentPerformance,
		OptimalReward:       p.parse("optimalReward", row.OptimalReward),
		PoolReward:          p.parse("poolReward", row.PoolReward),
		OperatorReward:      p.parse("operatorReward", row.OperatorReward),
		DistributedReward:   p.parse("distributedReward", row.DistributedReward),
		UnspendableReward:   p.parse("unspendableReward", row.UnspendableReward),
		Correction:          p.parse("correction", row.Correction),
		Margin:              row.Margin,
		FixedCost:           p.parse("fixedCost", row.FixedCost),
	}
	return r, p.err
}

func newRewardRow(r *db.Reward) *rewardRow {
	return &rewardRow{
		Epoch:        r.Epoch,
		PoolID:       r.PoolID,
		StakeAddress: r.StakeAddress,
		Type:         r.Type,
		Amount:       amountText(r.Amount),
	}
}

func (row *rewardRow) toReward() (db.Reward, error) {
	p := &amountParser{}
	r := db.Reward{
		Epoch:        row.Epoch,
		PoolID:       row.PoolID,
		StakeAddress: row.StakeAddress,
		Type:         row.Type,
		Amount:       p.parse("amount", row.Amount),
	}
	return r, p.err
}
