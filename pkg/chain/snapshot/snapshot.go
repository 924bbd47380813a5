// Package snapshot implements a chain.Provider reading flat JSON files, one
// file per epoch named epoch-<n>.json.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
)

const parsedFiles = 4

var fileNamePattern = regexp.MustCompile(`^epoch-(\d+)\.json$`)

// Provider reads the epoch data from a directory of snapshot files.
type Provider struct {
	dir   string
	files *lru.Cache
}

// NewProvider creates a new Provider for the given directory. An error is
// returned, if the directory doesn't exist.
func NewProvider(dir string) (*Provider, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot directory '%s' can't be used: %w", dir, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("snapshot path '%s' isn't a directory", dir)
	}
	files, err := lru.New(parsedFiles)
	if err != nil {
		return nil, err
	}
	return &Provider{
		dir:   dir,
		files: files,
	}, nil
}

func (p *Provider) Name() string {
	return "snapshot"
}

// Path returns the path of the snapshot file of the given epoch.
func (p *Provider) Path(epoch int) string {
	return filepath.Join(p.dir, fmt.Sprintf("epoch-%d.json", epoch))
}

// load reads and parses the snapshot file of the given epoch.
// chain.ErrEpochNotFound is returned, if there is no such file.
func (p *Provider) load(ctx context.Context, epoch int) (*epochFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cached, found := p.files.Get(epoch); found {
		return cached.(*epochFile), nil
	}
	data, err := os.ReadFile(p.Path(epoch))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no snapshot of epoch %d", chain.ErrEpochNotFound, epoch)
		}
		return nil, err
	}
	var file epochFile
	err = json.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("snapshot of epoch %d is malformed: %w", epoch, err)
	}
	if file.Epoch != epoch {
		return nil, fmt.Errorf("snapshot file of epoch %d holds epoch %d", epoch, file.Epoch)
	}
	log.Debugf("loaded the snapshot of epoch %d", epoch)
	p.files.Add(epoch, &file)
	return &file, nil
}

// missing returns the error for a section missing in a snapshot.
func missing(section string, epoch int) error {
	return fmt.Errorf("%w: the snapshot of epoch %d has no %s", chain.ErrEpochNotFound, epoch, section)
}

// Epochs returns the epochs for which a snapshot file exists in ascending
// order.
func (p *Provider) Epochs() ([]int, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, err
	}
	epochs := make([]int, 0)
	for _, entry := range entries {
		match := fileNamePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || match == nil {
			continue
		}
		epoch, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		epochs = append(epochs, epoch)
	}
	sort.Ints(epochs)
	return epochs, nil
}

func (p *Provider) ProtocolParameters(ctx context.Context, epoch int) (*rewards.ProtocolParameters, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if file.Parameters == nil {
		return nil, missing("parameters", epoch)
	}
	return file.Parameters.toParameters(epoch), nil
}

func (p *Provider) EpochInfo(ctx context.Context, epoch int) (*rewards.EpochInfo, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if file.Info == nil {
		return nil, missing("info", epoch)
	}
	return file.Info.toInfo(epoch), nil
}

func (p *Provider) PoolStates(ctx context.Context, epoch int) (map[string]*rewards.PoolState, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	pools := make(map[string]*rewards.PoolState, len(file.Pools))
	for i := range file.Pools {
		pool := file.Pools[i].toPoolState(epoch)
		if _, found := pools[pool.PoolID]; found {
			return nil, fmt.Errorf("the snapshot of epoch %d lists pool '%s' twice", epoch, pool.PoolID)
		}
		pools[pool.PoolID] = pool
	}
	return pools, nil
}

func (p *Provider) BlockProducers(ctx context.Context, epoch int) ([]string, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if file.Info != nil && file.Info.BlockProducers != nil {
		producers := append([]string{}, file.Info.BlockProducers...)
		sort.Strings(producers)
		return producers, nil
	}
	producers := make([]string, 0)
	for i := range file.Pools {
		if file.Pools[i].BlockCount > 0 {
			producers = append(producers, file.Pools[i].PoolID)
		}
	}
	sort.Strings(producers)
	return producers, nil
}

func (p *Provider) PoolCertificates(ctx context.Context, epoch int) ([]rewards.PoolCertificate, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	certificates := make([]rewards.PoolCertificate, 0, len(file.PoolCertificates))
	for i := range file.PoolCertificates {
		c, err := file.PoolCertificates[i].toCertificate()
		if err != nil {
			return nil, fmt.Errorf("the snapshot of epoch %d is malformed: %w", epoch, err)
		}
		certificates = append(certificates, c)
	}
	return certificates, nil
}

func (p *Provider) PoolRegistrations(ctx context.Context, epoch int) ([]rewards.PoolRegistration, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	registrations := make([]rewards.PoolRegistration, 0, len(file.PoolRegistrations))
	for _, r := range file.PoolRegistrations {
		registrations = append(registrations, rewards.PoolRegistration{PoolID: r.PoolID, Deposit: orZero(r.Deposit)})
	}
	return registrations, nil
}

func (p *Provider) AccountEvents(ctx context.Context, epoch int, addresses []string) ([]rewards.AccountEvent, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	wanted := rewards.NewSet(addresses...)
	events := make([]rewards.AccountEvent, 0)
	for i := range file.AccountEvents {
		if _, found := wanted[file.AccountEvents[i].StakeAddress]; !found {
			continue
		}
		e, err := file.AccountEvents[i].toEvent()
		if err != nil {
			return nil, fmt.Errorf("the snapshot of epoch %d is malformed: %w", epoch, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (p *Provider) MirCertificates(ctx context.Context, epoch int) ([]rewards.MirCertificate, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	mirs := make([]rewards.MirCertificate, 0, len(file.MirCertificates))
	for i := range file.MirCertificates {
		m, err := file.MirCertificates[i].toMir()
		if err != nil {
			return nil, fmt.Errorf("the snapshot of epoch %d is malformed: %w", epoch, err)
		}
		mirs = append(mirs, m)
	}
	return mirs, nil
}

func (p *Provider) SuppressedLeaderRewards(ctx context.Context, epoch int) ([]string, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	return file.SuppressedLeaderRewards, nil
}

func (p *Provider) AdaPots(ctx context.Context, epoch int) (*rewards.AdaPots, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	if file.Pots == nil {
		return nil, missing("pots", epoch)
	}
	return file.Pots.toAdaPots(epoch), nil
}

func (p *Provider) ObservedPoolReward(ctx context.Context, epoch int, poolID string) (*chain.ObservedPoolReward, error) {
	file, err := p.load(ctx, epoch)
	if err != nil {
		return nil, err
	}
	for i := range file.ObservedPoolRewards {
		if file.ObservedPoolRewards[i].PoolID == poolID {
			return file.ObservedPoolRewards[i].toObserved(epoch), nil
		}
	}
	return nil, fmt.Errorf("%w: no reward of pool '%s' recorded in epoch %d", chain.ErrEpochNotFound, poolID,
		epoch)
}

// LatestTip returns a tip in the latest epoch with a snapshot file.
func (p *Provider) LatestTip(ctx context.Context) (*chain.Tip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	epochs, err := p.Epochs()
	if err != nil {
		return nil, err
	}
	if len(epochs) == 0 {
		return nil, fmt.Errorf("%w: the snapshot directory '%s' is empty", chain.ErrEpochNotFound, p.dir)
	}
	return &chain.Tip{Epoch: uint(epochs[len(epochs)-1])}, nil
}
