package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blockblu-io/rewards-verifier/pkg/db"
	log "github.com/sirupsen/logrus"
)

func (l *SQLiteDB) GetComputedEpochs(ctx context.Context, ordering db.Ordering, limit uint) ([]uint, error) {
	orderingString := "ASC"
	if ordering == db.OrderingDesc {
		orderingString = "DESC"
	}
	query := fmt.Sprintf(`SELECT epoch FROM EpochResult ORDER BY epoch %s LIMIT ?`, orderingString)
	epochs := make([]uint, 0)
	err := l.db.SelectContext(ctx, &epochs, query, limit)
	if err != nil {
		log.Errorf("querying for the computed epochs failed: %s", err.Error())
		return nil, db.ReadError
	}
	return epochs, nil
}

func (l *SQLiteDB) GetEpochResult(ctx context.Context, epoch uint) (*db.EpochResult, error) {
	var row epochRow
	err := l.db.GetContext(ctx, &row, `SELECT * FROM EpochResult WHERE epoch = ?;`, epoch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Errorf("querying the result of epoch=%d failed: %s", epoch, err.Error())
		return nil, db.ReadError
	}
	result, err := row.toEpochResult()
	if err != nil {
		log.Errorf("scanning the result of epoch=%d failed: %s", epoch, err.Error())
		return nil, db.ReadError
	}
	return result, nil
}

// toPoolResults converts the scanned rows into pool results.
func toPoolResults(rows []poolRow) ([]db.PoolResult, error) {
	pools := make([]db.PoolResult, 0, len(rows))
	for i := range rows {
		pool, err := rows[i].toPoolResult()
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

func (l *SQLiteDB) GetPoolResults(ctx context.Context, epoch uint, offset, limit uint) ([]db.PoolResult, error) {
	var rows []poolRow
	err := l.db.SelectContext(ctx, &rows, `
SELECT * FROM PoolResult
WHERE epoch = ?
ORDER BY poolID ASC
LIMIT ?
OFFSET ?;
`, epoch, limit, offset)
	if err == nil {
		var pools []db.PoolResult
		pools, err = toPoolResults(rows)
		if err == nil {
			return pools, nil
		}
	}
	log.Errorf("querying the pool results (%d,%d) of epoch=%d failed: %s", offset, limit, epoch, err.Error())
	return nil, db.ReadError
}

func (l *SQLiteDB) GetPoolResult(ctx context.Context, epoch uint, poolID string) (*db.PoolResult, error) {
	var row poolRow
	err := l.db.GetContext(ctx, &row, `SELECT * FROM PoolResult WHERE epoch = ? and poolID = ?;`, epoch, poolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Errorf("querying the result of pool '%s' in epoch=%d failed: %s", poolID, epoch, err.Error())
		return nil, db.ReadError
	}
	pool, err := row.toPoolResult()
	if err != nil {
		log.Errorf("scanning the result of pool '%s' in epoch=%d failed: %s", poolID, epoch, err.Error())
		return nil, db.ReadError
	}
	rewards, err := l.queryAndScanRewards(ctx, `
SELECT epoch, poolID, stakeAddress, type, amount FROM Reward
WHERE epoch = ? and poolID = ?
ORDER BY type ASC, stakeAddress ASC;
`, epoch, poolID)
	if err != nil {
		log.Errorf("querying the rewards of pool '%s' in epoch=%d failed: %s", poolID, epoch, err.Error())
		return nil, db.ReadError
	}
	pool.Rewards = rewards
	return &pool, nil
}

// queryAndScanRewards queries for rewards with the specified query and scans
// the result set. An error will be returned, if the querying or the scanning
// fails.
func (l *SQLiteDB) queryAndScanRewards(ctx context.Context, query string, args ...interface{}) ([]db.Reward, error) {
	var rows []rewardRow
	err := l.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}
	rewards := make([]db.Reward, 0, len(rows))
	for i := range rows {
		reward, err := rows[i].toReward()
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

func (l *SQLiteDB) GetRewards(ctx context.Context, stakeAddress string) ([]db.Reward, error) {
	rewards, err := l.queryAndScanRewards(ctx, `
SELECT epoch, poolID, stakeAddress, type, amount FROM Reward
WHERE stakeAddress = ?
ORDER BY epoch ASC, poolID ASC, type ASC;
`, stakeAddress)
	if err != nil {
		log.Errorf("querying the rewards of '%s' failed: %s", stakeAddress, err.Error())
		return nil, db.ReadError
	}
	return rewards, nil
}
