package syncer

import (
	"context"
	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Syncer is a service, which computes the epoch boundaries that
// have been reached by the chain, but haven't been stored in the
// db.DB yet. Each epoch is computed from the pots stored for its
// previous epoch, and the result is stored in the db.DB.
type Syncer struct {
	provider  chain.Provider
	engine    *rewards.Engine
	db        db.DB
	start     uint
	lock      sync.Mutex
	epochChan syncChannel
}

// syncChannel is a buffered channel that contains all
// epochs which shall be computed.
type syncChannel struct {
	epochs     chan uint
	bufferSize int
}

// NewSyncer is creating a new Syncer. The given provider is used for
// gathering the inputs of an epoch, the given engine for computing it,
// and the given db.DB for storing the results. The first epoch to
// compute is start, if the db.DB holds no results.
func NewSyncer(provider chain.Provider, engine *rewards.Engine, idb db.DB, start uint) *Syncer {
	epochChannel := make(chan uint, 5)
	return &Syncer{
		provider: provider,
		engine:   engine,
		db:       idb,
		start:    start,
		epochChan: syncChannel{
			epochs:     epochChannel,
			bufferSize: 5,
		},
	}
}

// Run starts this sync service. The epochs are computed up to the epoch of
// the tip provided by the given TipUpdater. This method is blocking.
func (s *Syncer) Run(ctx context.Context, tips *TipUpdater) {
	log.Infof("started to sync epochs using '%s'", s.provider.Name())
	scanner := s.NewScanner(tips)
	go scanner.Run(ctx)
	for {
		select {
		case epoch := <-s.epochChan.epochs:
			s.processEpoch(ctx, epoch)
		case <-ctx.Done():
			return
		}
	}
}

// processEpoch computes the given epoch, if it hasn't been stored yet.
func (s *Syncer) processEpoch(ctx context.Context, epoch uint) {
	stored, err := s.db.GetEpochResult(ctx, epoch)
	if err != nil || stored != nil {
		return
	}
	_, err = s.SyncEpoch(ctx, epoch)
	if err != nil {
		log.Errorf("couldn't sync epoch %d: %s", epoch, err.Error())
	}
}

// SyncEpoch computes the boundary of the given epoch and stores the result
// in the db.DB, overwriting a result stored before. The pots of the
// previous epoch are taken from the db.DB, if they have been stored, and
// from the provider otherwise.
//
// An error will be returned, if the inputs couldn't be gathered, the
// computation failed or the result couldn't be stored.
func (s *Syncer) SyncEpoch(ctx context.Context, epoch uint) (*db.EpochResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	var previous *rewards.AdaPots
	if epoch > 0 {
		stored, err := s.db.GetEpochResult(ctx, epoch-1)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			previous = stored.AdaPots()
		}
	}
	policy := s.engine.Policy()
	in, err := chain.Collect(ctx, s.provider, policy, int(epoch), previous)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	result, err := s.engine.ComputeEpoch(ctx, in)
	if err != nil {
		return nil, err
	}
	stored := db.NewEpochResult(policy.Network().Name, result, time.Now())
	err = s.db.WriteEpochResult(ctx, stored)
	if err != nil {
		return nil, err
	}
	log.Infof("computed epoch %d (%s) with %d pools and %d diagnostics in %v", epoch, result.State,
		len(result.PerPoolResults), len(result.Diagnostics), time.Since(started))
	return stored, nil
}

// nextEpoch returns the epoch following the latest stored epoch, or the
// start epoch, if no later epoch has been stored.
func (s *Syncer) nextEpoch(ctx context.Context) (uint, error) {
	epochs, err := s.db.GetComputedEpochs(ctx, db.OrderingDesc, 1)
	if err != nil {
		return 0, err
	}
	if len(epochs) == 0 || epochs[0] < s.start {
		return s.start, nil
	}
	return epochs[0] + 1, nil
}
