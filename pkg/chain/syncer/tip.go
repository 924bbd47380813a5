package syncer

import (
	"context"
	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

// TipUpdater keeps the latest tip of the chain. UpdateC receives a
// notification, whenever a new tip has been fetched, and is closed when the
// updater stops.
type TipUpdater struct {
	lock    sync.RWMutex
	tip     *chain.Tip
	UpdateC chan struct{}
}

func NewTipUpdater() *TipUpdater {
	tipUpdateChan := make(chan struct{}, 1)
	return &TipUpdater{
		lock:    sync.RWMutex{},
		tip:     nil,
		UpdateC: tipUpdateChan,
	}
}

// GetTip returns the latest fetched tip, or nil, if no tip has been fetched
// yet.
func (tu *TipUpdater) GetTip() *chain.Tip {
	tu.lock.RLock()
	defer tu.lock.RUnlock()
	return tu.tip
}

// Run fetches the tip from the given source in the given interval until the
// context is done. This method is non-blocking.
func (tu *TipUpdater) Run(ctx context.Context, source chain.TipSource, interval time.Duration) {
	gather := func(ctx context.Context) {
		tip, err := source.LatestTip(ctx)
		if err != nil {
			log.Errorf("tip couldn't be gathered: %s", err.Error())
			return
		}
		log.Infof("fetched the tip (%d,%d) with hash=%s (minted at %s)",
			tip.Epoch, tip.SlotInEpoch, tip.Hash,
			time.Unix(int64(tip.Timestamp), 0))
		tu.lock.Lock()
		tu.tip = tip
		tu.lock.Unlock()
		select {
		case tu.UpdateC <- struct{}{}:
		default:
		}
	}
	go func() {
		defer close(tu.UpdateC)
		gather(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gather(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
