package sqlite

import (
	"context"
	"github.com/jmoiron/sqlx"
)

// Lovelace amounts exceed the int64 range of sqlite integers in sums, hence
// they are stored as decimal text.

func createTables(sqlDB *sqlx.DB) error {
	ctx := context.Background()
	tx, err := sqlDB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, create := range []func(*sqlx.Tx, context.Context) error{
		createEpochResultTable,
		createPoolResultTable,
		createRewardTable,
	} {
		err = create(tx, ctx)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func createEpochResultTable(tx *sqlx.Tx, ctx context.Context) error {
	sqlStmt := `
CREATE TABLE EpochResult (
	epoch INTEGER NOT NULL PRIMARY KEY,
	state VARCHAR(32) NOT NULL,
	network VARCHAR(64) NOT NULL,
	reserves TEXT NOT NULL,
	treasury TEXT NOT NULL,
	deposits TEXT NOT NULL,
	utxo TEXT NOT NULL,
	adaInCirculation TEXT NOT NULL,
	rewardsPot TEXT NOT NULL,
	poolRewardsPot TEXT NOT NULL,
	distributedRewards TEXT NOT NULL,
	undistributedRewards TEXT NOT NULL,
	unspendableRewards TEXT NOT NULL,
	unclaimedRefunds TEXT NOT NULL,
	treasuryWithdrawals TEXT NOT NULL,
	reservesWithdrawals TEXT NOT NULL,
	treasuryCut TEXT NOT NULL,
	fees TEXT NOT NULL,
	eta TEXT NOT NULL,
	diagnostics INTEGER NOT NULL DEFAULT 0,
	computedAt Date NOT NULL
);
`
	_, err := tx.ExecContext(ctx, sqlStmt)
	return err
}

func createPoolResultTable(tx *sqlx.Tx, ctx context.Context) error {
	sqlStmt := `
CREATE TABLE PoolResult (
	epoch INTEGER NOT NULL,
	poolID VARCHAR(128) NOT NULL,
	rewardAddress VARCHAR(128) NOT NULL,
	apparentPerformance TEXT NOT NULL,
	optimalReward TEXT NOT NULL,
	poolReward TEXT NOT NULL,
	operatorReward TEXT NOT NULL,
	distributedReward TEXT NOT NULL,
	unspendableReward TEXT NOT NULL,
	correction TEXT NOT NULL,
	margin TEXT NOT NULL,
	fixedCost TEXT NOT NULL,
	PRIMARY KEY(epoch, poolID),
	FOREIGN KEY (epoch) REFERENCES EpochResult(epoch) ON DELETE CASCADE
);
`
	_, err := tx.ExecContext(ctx, sqlStmt)
	return err
}

func createRewardTable(tx *sqlx.Tx, ctx context.Context) error {
	sqlStmt := `
CREATE TABLE Reward (
	id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	epoch INTEGER NOT NULL,
	poolID VARCHAR(128) NOT NULL,
	stakeAddress VARCHAR(128) NOT NULL,
	type VARCHAR(16) NOT NULL,
	amount TEXT NOT NULL,
	FOREIGN KEY (epoch, poolID) REFERENCES PoolResult(epoch, poolID) ON DELETE CASCADE
);
CREATE INDEX RewardStakeAddress ON Reward(stakeAddress);
`
	_, err := tx.ExecContext(ctx, sqlStmt)
	return err
}
