package db

import (
	"context"
	"errors"
)

// Ordering specified in which order a list shall be sorted.
type Ordering uint

const (
	OrderingAsc  Ordering = 0
	OrderingDesc Ordering = 1
)

// DB is an interface to store and query computed epoch results as well
// as the pool results and rewards belonging to them.
type DB interface {

	// Observer is returning a db.Observer for this db.DB instance.
	Observer() *Observer

	// GetComputedEpochs gets a list of all epochs for which a result has been
	// stored.
	GetComputedEpochs(ctx context.Context, ordering Ordering, limit uint) ([]uint, error)

	// GetEpochResult gets the result computed for the given epoch without its
	// pool results. Nil is returned, if no result has been stored for the
	// epoch.
	GetEpochResult(ctx context.Context, epoch uint) (*EpochResult, error)

	// GetPoolResults gets the pool results of the given epoch ordered by pool
	// id. The rewards of the pools aren't loaded.
	GetPoolResults(ctx context.Context, epoch uint, offset, limit uint) ([]PoolResult, error)

	// GetPoolResult gets the result of the pool with the given id in the given
	// epoch including its rewards. Nil is returned, if there is no such pool
	// result.
	GetPoolResult(ctx context.Context, epoch uint, poolID string) (*PoolResult, error)

	// GetRewards gets all rewards paid to the given stake address.
	GetRewards(ctx context.Context, stakeAddress string) ([]Reward, error)

	// WriteEpochResult writes the given epoch result together with its pool
	// results and rewards to the DB. If a result has already been written
	// for this epoch, then the old result will be overwritten.
	WriteEpochResult(ctx context.Context, result *EpochResult) error

	// Close closes this database and all connections.
	Close() error
}

var (
	// ReadError is returned, when querying the database failed for some reason.
	ReadError = errors.New("read from the database failed")
	// WriteError is returned, when querying the database failed for some reason.
	WriteError = errors.New("write to the database failed")
)
