// Package validate compares computed epoch results with the pots and pool
// rewards recorded by the chain.
package validate

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	log "github.com/sirupsen/logrus"
)

// PotsSubject is the subject of all pot comparisons in a Report.
const PotsSubject = "pots"

// ErrMismatch is returned, when at least one computed amount differs from
// the observed one.
var ErrMismatch = errors.New("computed amounts differ from the observed ones")

// Comparison is a computed amount next to the amount observed on chain.
type Comparison struct {
	// Subject is either PotsSubject or the id of a pool.
	Subject  string
	Field    string
	Computed *big.Int
	Observed *big.Int
}

// Delta returns the computed minus the observed amount.
func (c Comparison) Delta() *big.Int {
	return numeric.Sub(c.Computed, c.Observed)
}

func (c Comparison) Matches() bool {
	return c.Delta().Sign() == 0
}

// Report is the outcome of validating one epoch.
type Report struct {
	Epoch       int
	Comparisons []Comparison
	// Unobserved lists the pools for which the chain has no reward record.
	Unobserved []string
}

// Mismatches returns the comparisons whose amounts differ.
func (r *Report) Mismatches() []Comparison {
	var mismatches []Comparison
	for _, c := range r.Comparisons {
		if !c.Matches() {
			mismatches = append(mismatches, c)
		}
	}
	return mismatches
}

// Err returns ErrMismatch wrapped with the number of mismatches, or nil if
// all comparisons match.
func (r *Report) Err() error {
	n := len(r.Mismatches())
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d amounts in epoch %d", ErrMismatch, n, len(r.Comparisons), r.Epoch)
}

type potField struct {
	field              string
	computed, observed *big.Int
}

// Validator looks up the observed amounts of computed results.
type Validator struct {
	pots         chain.PotSource
	observations chain.ObservationSource
}

// NewValidator creates a Validator. The observations may be nil, in which
// case only the pots are compared.
func NewValidator(pots chain.PotSource, observations chain.ObservationSource) *Validator {
	return &Validator{pots: pots, observations: observations}
}

// Validate compares the given result with the pots recorded at its epoch
// and the rewards recorded for each of its pools. Pools without a record
// are listed as unobserved. An error is only returned, if the observed data
// couldn't be fetched.
func (v *Validator) Validate(ctx context.Context, result *rewards.EpochResult) (*Report, error) {
	observed, err := v.pots.AdaPots(ctx, result.Epoch)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch the pots of epoch %d: %w", result.Epoch, err)
	}
	report := &Report{Epoch: result.Epoch}
	pots := []potField{
		{"reserves", result.Reserves, observed.Reserves},
		{"treasury", result.Treasury, observed.Treasury},
		{"rewards", result.TotalRewardsPot, observed.RewardsPot},
		{"deposits", result.Deposits, observed.Deposits},
		{"adaInCirculation", result.AdaInCirculation, observed.AdaInCirculation},
	}
	// The UTxO is only known at the era start. Later results carry the
	// previous amount.
	if result.State == era.EraStart {
		pots = append(pots, potField{"utxo", result.Utxo, observed.Utxo})
	}
	for _, p := range pots {
		if p.observed == nil {
			continue
		}
		report.Comparisons = append(report.Comparisons, Comparison{
			Subject:  PotsSubject,
			Field:    p.field,
			Computed: numeric.Copy(p.computed),
			Observed: p.observed,
		})
	}
	if v.observations == nil {
		return report, nil
	}
	for _, pool := range result.PerPoolResults {
		reward, err := v.observations.ObservedPoolReward(ctx, result.Epoch, pool.PoolID)
		if errors.Is(err, chain.ErrEpochNotFound) {
			report.Unobserved = append(report.Unobserved, pool.PoolID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't fetch the reward of pool %s: %w", pool.PoolID, err)
		}
		report.Comparisons = append(report.Comparisons,
			Comparison{Subject: pool.PoolID, Field: "poolReward",
				Computed: numeric.Copy(pool.PoolReward), Observed: numeric.Copy(reward.Rewards)},
			Comparison{Subject: pool.PoolID, Field: "operatorReward",
				Computed: numeric.Copy(pool.OperatorReward), Observed: numeric.Copy(reward.Fees)},
		)
	}
	log.WithFields(log.Fields{
		"epoch":      result.Epoch,
		"compared":   len(report.Comparisons),
		"mismatches": len(report.Mismatches()),
		"unobserved": len(report.Unobserved),
	}).Debug("validated epoch")
	return report, nil
}
