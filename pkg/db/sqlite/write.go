package sqlite

import (
	"context"

	"github.com/blockblu-io/rewards-verifier/pkg/db"
	log "github.com/sirupsen/logrus"
)

const (
	insertEpochResult = `
INSERT INTO EpochResult (epoch, state, network, reserves, treasury, deposits, utxo, adaInCirculation, rewardsPot,
	poolRewardsPot, distributedRewards, undistributedRewards, unspendableRewards, unclaimedRefunds,
	treasuryWithdrawals, reservesWithdrawals, treasuryCut, fees, eta, diagnostics, computedAt)
VALUES (:epoch, :state, :network, :reserves, :treasury, :deposits, :utxo, :adaInCirculation, :rewardsPot,
	:poolRewardsPot, :distributedRewards, :undistributedRewards, :unspendableRewards, :unclaimedRefunds,
	:treasuryWithdrawals, :reservesWithdrawals, :treasuryCut, :fees, :eta, :diagnostics, :computedAt)
`
	insertPoolResult = `
INSERT INTO PoolResult (epoch, poolID, rewardAddress, apparentPerformance, optimalReward, poolReward,
	operatorReward, distributedReward, unspendableReward, correction, margin, fixedCost)
VALUES (:epoch, :poolID, :rewardAddress, :apparentPerformance, :optimalReward, :poolReward,
	:operatorReward, :distributedReward, :unspendableReward, :correction, :margin, :fixedCost)
`
	insertReward = `
INSERT INTO Reward (epoch, poolID, stakeAddress, type, amount)
VALUES (:epoch, :poolID, :stakeAddress, :type, :amount)
`
)

func (l *SQLiteDB) WriteEpochResult(ctx context.Context, result *db.EpochResult) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Errorf("couldn't start a transaction to write the result of epoch '%d': %s", result.Epoch,
			err.Error())
		return db.WriteError
	}
	// Pool results and rewards are removed by the cascade.
	_, err = tx.ExecContext(ctx, `DELETE FROM EpochResult WHERE epoch = ?;`, result.Epoch)
	if err != nil {
		_ = tx.Rollback()
		log.Errorf("removing the old result of epoch '%d' failed: %s", result.Epoch, err.Error())
		return db.WriteError
	}
	_, err = tx.NamedExecContext(ctx, insertEpochResult, newEpochRow(result))
	if err != nil {
		_ = tx.Rollback()
		log.Errorf("inserting the result of epoch '%d' failed: %s", result.Epoch, err.Error())
		return db.WriteError
	}
	insertPoolStmt, err := tx.PrepareNamedContext(ctx, insertPoolResult)
	if err != nil {
		_ = tx.Rollback()
		log.Errorf("preparing the query for pool result insertion for epoch '%d' failed: %s", result.Epoch,
			err.Error())
		return db.WriteError
	}
	defer insertPoolStmt.Close()
	insertRewardStmt, err := tx.PrepareNamedContext(ctx, insertReward)
	if err != nil {
		_ = tx.Rollback()
		log.Errorf("preparing the query for reward insertion for epoch '%d' failed: %s", result.Epoch,
			err.Error())
		return db.WriteError
	}
	defer insertRewardStmt.Close()
	for i := range result.Pools {
		pool := &result.Pools[i]
		_, err = insertPoolStmt.ExecContext(ctx, newPoolRow(pool))
		if err != nil {
			_ = tx.Rollback()
			log.Errorf("pool result insertion of pool '%s' for epoch '%d' failed: %s", pool.PoolID,
				result.Epoch, err.Error())
			return db.WriteError
		}
		for j := range pool.Rewards {
			_, err = insertRewardStmt.ExecContext(ctx, newRewardRow(&pool.Rewards[j]))
			if err != nil {
				_ = tx.Rollback()
				log.Errorf("reward insertion of pool '%s' for epoch '%d' failed: %s", pool.PoolID,
					result.Epoch, err.Error())
				return db.WriteError
			}
		}
	}
	err = tx.Commit()
	if err != nil {
		log.Errorf("committing the result of epoch '%d' failed: %s", result.Epoch, err.Error())
		return db.WriteError
	}
	go l.obv.Pub(db.ObserverMessage{Code: db.ObserveNewEpochResult, Response: result.Epoch})
	return nil
}
