package syncer

import (
	"context"
	"github.com/blockblu-io/rewards-verifier/pkg/db"
	log "github.com/sirupsen/logrus"
)

// Scanner schedules the next epoch to compute, whenever the tip has
// changed or an epoch result has been stored.
type Scanner struct {
	syncer   *Syncer
	tips     *TipUpdater
	listener chan db.ObserverMessage
}

func (s *Syncer) NewScanner(tips *TipUpdater) *Scanner {
	obv := s.db.Observer()
	listener := make(chan db.ObserverMessage)
	obv.Sub(listener)
	return &Scanner{
		syncer:   s,
		tips:     tips,
		listener: listener,
	}
}

func (sc *Scanner) Run(ctx context.Context) {
	sc.scanNextEpoch(ctx)
	for {
		select {
		case msg, ok := <-sc.listener:
			if !ok {
				return
			}
			if msg.Code == db.ObserveNewEpochResult {
				sc.scanNextEpoch(ctx)
			}
		case _, ok := <-sc.tips.UpdateC:
			if !ok {
				return
			}
			sc.scanNextEpoch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// scanNextEpoch passes the next epoch to the syncer, if the chain has
// reached its boundary.
func (sc *Scanner) scanNextEpoch(ctx context.Context) {
	tip := sc.tips.GetTip()
	if tip == nil {
		return
	}
	next, err := sc.syncer.nextEpoch(ctx)
	if err != nil {
		log.Errorf("couldn't scan for the next epoch: %s", err.Error())
		return
	}
	if next > tip.Epoch {
		log.Debugf("epoch %d hasn't been reached by the tip in epoch %d", next, tip.Epoch)
		return
	}
	log.Infof("scheduling epoch %d (tip in epoch %d)", next, tip.Epoch)
	select {
	case sc.syncer.epochChan.epochs <- next:
	case <-ctx.Done():
	}
}
