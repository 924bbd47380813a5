package rewards

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	log "github.com/sirupsen/logrus"
)

// Engine computes epoch boundaries for one network. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	policy  *era.Policy
	workers int
}

// NewEngine creates an engine computing pool rewards on the given number of
// workers. A non-positive number selects one worker per CPU.
func NewEngine(policy *era.Policy, workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{policy: policy, workers: workers}
}

// Policy returns the era policy of the engine.
func (e *Engine) Policy() *era.Policy {
	return e.policy
}

// ComputeEpoch computes the pots and rewards of the boundary of in.Epoch.
// Missing facts are reported as diagnostics on the result. Invalid inputs
// and broken invariants are returned as errors, without a result.
func (e *Engine) ComputeEpoch(ctx context.Context, in *EpochInputs) (*EpochResult, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: epoch inputs", ErrMissingInputs)
	}
	switch phase := e.policy.Phase(in.Epoch); phase {
	case era.PreEraStart:
		return e.preEraStart(in.Epoch), nil
	case era.EraStart:
		return e.eraStart(in.Epoch), nil
	}
	return e.steadyState(ctx, in)
}

func zeroResult(epoch int, phase era.Phase) *EpochResult {
	return &EpochResult{
		Epoch:                         epoch,
		State:                         phase,
		Reserves:                      new(big.Int),
		Treasury:                      new(big.Int),
		Deposits:                      new(big.Int),
		Utxo:                          new(big.Int),
		AdaInCirculation:              new(big.Int),
		TotalRewardsPot:               new(big.Int),
		TotalPoolRewardsPot:           new(big.Int),
		TotalDistributedRewards:       new(big.Int),
		TotalUndistributedRewards:     new(big.Int),
		TotalUnspendableEarnedRewards: new(big.Int),
		TotalUnclaimedRefunds:         new(big.Int),
		TreasuryWithdrawals:           new(big.Int),
		ReservesWithdrawals:           new(big.Int),
		TreasuryCut:                   new(big.Int),
		Fees:                          new(big.Int),
		Eta:                           numeric.Zero,
	}
}

func (e *Engine) preEraStart(epoch int) *EpochResult {
	return zeroResult(epoch, era.PreEraStart)
}

func (e *Engine) eraStart(epoch int) *EpochResult {
	network := e.policy.Network()
	result := zeroResult(epoch, era.EraStart)
	result.Reserves = numeric.Copy(network.InitialReserves)
	result.Treasury = numeric.Copy(network.InitialTreasury)
	result.Utxo = numeric.Copy(network.InitialUtxo)
	result.AdaInCirculation = numeric.Sub(network.TotalLovelace, network.InitialReserves)
	return result
}

func (e *Engine) steadyState(ctx context.Context, in *EpochInputs) (*EpochResult, error) {
	if err := validatePots(in.PreviousPots); err != nil {
		return nil, err
	}
	if err := ValidateParameters(in.Parameters); err != nil {
		return nil, err
	}
	if err := validateInfo(in.Info); err != nil {
		return nil, err
	}
	if in.Facts == nil {
		return nil, fmt.Errorf("%w: registration facts", ErrMissingInputs)
	}
	network := e.policy.Network()
	facts := in.Facts
	previous := in.PreviousPots

	treasury, err := ComputeTreasury(e.policy, TreasuryInputs{
		Epoch:            in.Epoch,
		PreviousReserves: previous.Reserves,
		PreviousTreasury: previous.Treasury,
		Parameters:       in.Parameters,
		Info:             in.Info,
		RetiredPools:     in.RetiredPools,
		MirCertificates:  in.MirCertificates,
		Facts:            facts,
	})
	if err != nil {
		return nil, err
	}
	deposits, err := ComputeDeposits(previous.Deposits, in.PoolRegistrations, in.RetiredPools,
		facts, in.Parameters, network)
	if err != nil {
		return nil, err
	}

	adaInCirculation := numeric.Sub(network.TotalLovelace, previous.Reserves)
	producers, diagnostics := e.blockProducers(in)
	tasks := e.poolTasks(in, facts, producers, treasury, adaInCirculation)
	outcomes, err := e.runPools(ctx, tasks)
	if err != nil {
		return nil, err
	}

	result := zeroResult(in.Epoch, era.SteadyState)
	result.TotalRewardsPot = treasury.RewardPot
	result.TotalPoolRewardsPot = treasury.StakePoolRewardsPot
	result.TreasuryCut = treasury.TreasuryCut
	result.TotalUnclaimedRefunds = treasury.UnclaimedRefunds
	result.TreasuryWithdrawals = treasury.TreasuryWithdrawals
	result.ReservesWithdrawals = treasury.ReservesWithdrawals
	result.Fees = numeric.Copy(in.Info.Fees)
	result.Eta = treasury.Eta
	result.Deposits = deposits.Deposits
	result.Utxo = numeric.Copy(previous.Utxo)

	// Reduction runs in pool id order so that the result doesn't depend on
	// the scheduling of the workers.
	for _, o := range outcomes {
		result.PerPoolResults = append(result.PerPoolResults, o.result)
		result.TotalDistributedRewards.Add(result.TotalDistributedRewards, o.result.DistributedPoolReward)
		result.TotalUnspendableEarnedRewards.Add(result.TotalUnspendableEarnedRewards, o.result.UnspendableEarnedRewards)
		diagnostics = append(diagnostics, o.diagnostics...)
	}
	result.Diagnostics = diagnostics
	result.TotalUndistributedRewards = numeric.Sub(result.TotalPoolRewardsPot, result.TotalDistributedRewards)
	if err := checkConservation(result); err != nil {
		return nil, err
	}

	// reserve' = reserve - (rewardPot - fees) - MIR(reserves) + undistributed - unspendable
	reserves := numeric.Sub(previous.Reserves, numeric.Sub(treasury.RewardPot, in.Info.Fees))
	reserves.Sub(reserves, treasury.ReservesWithdrawals)
	reserves.Add(reserves, result.TotalUndistributedRewards)
	reserves.Sub(reserves, result.TotalUnspendableEarnedRewards)
	if e.policy.IsBootstrapCorrectionEpoch(in.Epoch) {
		reserves.Add(reserves, network.BootstrapAddressAmount)
	}
	if reserves.Sign() < 0 {
		return nil, fmt.Errorf("%w: epoch %d: reserves would become negative (%s)",
			ErrArithmeticInconsistency, in.Epoch, reserves)
	}
	result.Reserves = reserves
	result.Treasury = numeric.Add(treasury.Treasury, result.TotalUnspendableEarnedRewards)
	result.AdaInCirculation = numeric.Sub(network.TotalLovelace, reserves)

	for _, d := range result.Diagnostics {
		if d.Kind == MissingPoolState || d.Kind == MissingDelegatorData {
			log.WithFields(log.Fields{
				"epoch": in.Epoch,
				"pool":  d.PoolID,
				"kind":  d.Kind,
			}).Warn(d.Message)
		}
	}
	log.WithFields(log.Fields{
		"epoch":       in.Epoch,
		"reserves":    result.Reserves,
		"treasury":    result.Treasury,
		"rewardPot":   result.TotalRewardsPot,
		"distributed": result.TotalDistributedRewards,
		"pools":       len(result.PerPoolResults),
	}).Debug("computed epoch")
	return result, nil
}

// checkConservation asserts the invariants of the aggregated totals.
func checkConservation(r *EpochResult) error {
	if numeric.Sum(r.TotalDistributedRewards, r.TotalUndistributedRewards).Cmp(r.TotalPoolRewardsPot) != 0 {
		return fmt.Errorf("%w: epoch %d: distributed %s + undistributed %s != pool rewards pot %s",
			ErrArithmeticInconsistency, r.Epoch, r.TotalDistributedRewards, r.TotalUndistributedRewards,
			r.TotalPoolRewardsPot)
	}
	if r.TotalUndistributedRewards.Sign() < 0 {
		return fmt.Errorf("%w: epoch %d: distributed %s exceeds the pool rewards pot %s",
			ErrArithmeticInconsistency, r.Epoch, r.TotalDistributedRewards, r.TotalPoolRewardsPot)
	}
	if r.TotalUnspendableEarnedRewards.Cmp(r.TotalUndistributedRewards) > 0 {
		return fmt.Errorf("%w: epoch %d: unspendable %s exceeds undistributed %s",
			ErrArithmeticInconsistency, r.Epoch, r.TotalUnspendableEarnedRewards, r.TotalUndistributedRewards)
	}
	return nil
}

// blockProducers returns the sorted ids of the pools that minted blocks.
// Listed producers without a pool state are reported.
func (e *Engine) blockProducers(in *EpochInputs) ([]string, []Diagnostic) {
	ids := map[string]struct{}{}
	if in.BlockProducers != nil {
		for _, id := range in.BlockProducers {
			ids[id] = struct{}{}
		}
	} else {
		for id, pool := range in.PoolStates {
			if pool != nil && pool.BlockCount > 0 {
				ids[id] = struct{}{}
			}
		}
	}
	var producers []string
	var diagnostics []Diagnostic
	for id := range ids {
		if in.PoolStates[id] == nil {
			diagnostics = append(diagnostics, Diagnostic{
				Kind:    MissingPoolState,
				PoolID:  id,
				Message: "pool minted blocks but has no pool state, treated as zero reward",
			})
		}
		producers = append(producers, id)
	}
	sort.Strings(producers)
	sort.Slice(diagnostics, func(i, j int) bool { return diagnostics[i].PoolID < diagnostics[j].PoolID })
	return producers, diagnostics
}

type poolTask struct {
	poolID string
	inputs PoolRewardInputs
}

type poolOutcome struct {
	result      *PoolRewardResult
	diagnostics []Diagnostic
}

func (e *Engine) poolTasks(in *EpochInputs, facts *RegistrationFacts, producers []string,
	treasury *TreasuryResult, adaInCirculation *big.Int) []poolTask {
	addressUse := map[string]int{}
	for _, id := range producers {
		if pool := in.PoolStates[id]; pool != nil {
			addressUse[pool.RewardAddress]++
		}
	}
	tasks := make([]poolTask, len(producers))
	for i, id := range producers {
		pool := in.PoolStates[id]
		tasks[i] = poolTask{
			poolID: id,
			inputs: PoolRewardInputs{
				Epoch:               in.Epoch,
				Pool:                pool,
				StakePoolRewardsPot: treasury.StakePoolRewardsPot,
				AdaInCirculation:    adaInCirculation,
				TotalActiveStake:    in.Info.ActiveStake,
				TotalBlocks:         treasury.BlockCount,
				Parameters:          in.Parameters,
				Facts:               facts,
				SharedRewardAddress: pool != nil && addressUse[pool.RewardAddress] > 1,
			},
		}
	}
	return tasks
}

// runPools computes the pool rewards on the engine's workers. Each outcome
// is written to the slot of its task, so the order of the outcomes is the
// order of the tasks.
func (e *Engine) runPools(ctx context.Context, tasks []poolTask) ([]poolOutcome, error) {
	outcomes := make([]poolOutcome, len(tasks))
	numWorkers := e.workers
	if numWorkers > len(tasks) {
		numWorkers = len(tasks)
	}
	if numWorkers == 0 {
		return outcomes, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	indices := make(chan int, 10*numWorkers)
	go func() {
		defer close(indices)
		for i := range tasks {
			select {
			case indices <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var cachedPanic atomic.Value
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	workerErrs := make([]error, numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			// channel panics back to the caller.
			defer func() {
				if r := recover(); r != nil {
					cancel()
					cachedPanic.Store(fmt.Sprint(r))
				}
			}()
			for i := range indices {
				if ctx.Err() != nil {
					return
				}
				task := tasks[i]
				if task.inputs.Pool == nil {
					outcomes[i] = poolOutcome{result: zeroPoolResult(task.inputs.Epoch, nil, task.poolID)}
					continue
				}
				result, diagnostics, err := ComputePoolReward(e.policy, task.inputs)
				if err != nil {
					workerErrs[w] = err
					cancel()
					return
				}
				outcomes[i] = poolOutcome{result: result, diagnostics: diagnostics}
			}
		}(w)
	}
	wg.Wait()

	if r := cachedPanic.Load(); r != nil {
		return nil, fmt.Errorf("%w: pool reward computation panicked: %v", ErrArithmeticInconsistency, r)
	}
	if err := errors.Join(workerErrs...); err != nil {
		return nil, err
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
