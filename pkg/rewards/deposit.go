package rewards

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/blockblu-io/rewards-verifier/pkg/numeric"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
)

// CertificateKind distinguishes pool certificates.
type CertificateKind int

const (
	// PoolRegistrationCertificate registers a pool or updates its
	// parameters.
	PoolRegistrationCertificate CertificateKind = iota
	// PoolRetirementCertificate announces the retirement of a pool.
	PoolRetirementCertificate
)

// PoolCertificate is a pool registration, update or retirement
// certificate as found on chain.
type PoolCertificate struct {
	PoolID string
	Kind   CertificateKind
	// Slot, TxIndex and CertIndex order certificates on chain.
	Slot      uint64
	TxIndex   int
	CertIndex int
	// RetiringEpoch is set on retirement certificates.
	RetiringEpoch int
	// RewardAddress is set on registration certificates.
	RewardAddress string
	// Deposit is set on registrations that paid a deposit.
	Deposit *big.Int
}

func (c PoolCertificate) before(o PoolCertificate) bool {
	if c.Slot != o.Slot {
		return c.Slot < o.Slot
	}
	if c.TxIndex != o.TxIndex {
		return c.TxIndex < o.TxIndex
	}
	return c.CertIndex < o.CertIndex
}

// ResolveRetirements returns the pools whose retirement takes effect exactly
// at the boundary of epoch. Only the latest retirement certificate of a pool
// counts, and a registration or update certificate issued after it cancels
// the retirement. Certificates issued at or after the boundary must not be
// passed. The result is sorted by pool id.
func ResolveRetirements(epoch int, certificates []PoolCertificate) []RetiredPool {
	byPool := map[string][]PoolCertificate{}
	for _, c := range certificates {
		byPool[c.PoolID] = append(byPool[c.PoolID], c)
	}

	var retired []RetiredPool
	for poolID, certs := range byPool {
		sort.SliceStable(certs, func(i, j int) bool { return certs[i].before(certs[j]) })

		latestRetirement := -1
		for i, c := range certs {
			if c.Kind == PoolRetirementCertificate {
				latestRetirement = i
			}
		}
		if latestRetirement < 0 || certs[latestRetirement].RetiringEpoch != epoch {
			continue
		}
		cancelled := false
		for _, c := range certs[latestRetirement+1:] {
			if c.Kind == PoolRegistrationCertificate {
				cancelled = true
				break
			}
		}
		if cancelled {
			continue
		}

		pool := RetiredPool{PoolID: poolID}
		for _, c := range certs[:latestRetirement] {
			if c.Kind != PoolRegistrationCertificate {
				continue
			}
			pool.RewardAddress = c.RewardAddress
			if c.Deposit != nil {
				pool.DepositAmount = c.Deposit
			}
		}
		retired = append(retired, pool)
	}
	sort.Slice(retired, func(i, j int) bool { return retired[i].PoolID < retired[j].PoolID })
	return retired
}

// PoolRegistration is a pool deposit paid into the deposit pot.
type PoolRegistration struct {
	PoolID  string
	Deposit *big.Int
}

// DepositResult is the change of the deposit pot at one boundary.
type DepositResult struct {
	Deposits             *big.Int
	RegistrationDeposits *big.Int
	// Refunds are returned to the reward addresses of retired pools.
	Refunds *big.Int
	// UnclaimedRefunds go to the treasury.
	UnclaimedRefunds *big.Int
	RefundedPools    []string
	UnclaimedPools   []string
}

// ComputeDeposits tracks the deposit pot across pool registrations and
// retirements. Every retiring pool's deposit leaves the pot, either as a
// refund or as an unclaimed refund.
func ComputeDeposits(previous *big.Int, registrations []PoolRegistration, retired []RetiredPool,
	facts *RegistrationFacts, params *ProtocolParameters, network *era.Network) (*DepositResult, error) {
	if isNegative(previous) {
		return nil, invalid("negative deposit pot %s", previous)
	}
	result := &DepositResult{
		RegistrationDeposits: new(big.Int),
		Refunds:              new(big.Int),
		UnclaimedRefunds:     new(big.Int),
	}
	for _, r := range registrations {
		if isNegative(r.Deposit) {
			return nil, invalid("pool %s: negative deposit %s", r.PoolID, r.Deposit)
		}
		result.RegistrationDeposits.Add(result.RegistrationDeposits, numeric.Copy(r.Deposit))
	}
	for _, pool := range retired {
		deposit := PoolDepositOf(pool, params, network)
		if RefundClaimable(facts, pool.RewardAddress) {
			result.Refunds.Add(result.Refunds, deposit)
			result.RefundedPools = append(result.RefundedPools, pool.PoolID)
		} else {
			result.UnclaimedRefunds.Add(result.UnclaimedRefunds, deposit)
			result.UnclaimedPools = append(result.UnclaimedPools, pool.PoolID)
		}
	}
	deposits := numeric.Add(previous, result.RegistrationDeposits)
	deposits.Sub(deposits, result.Refunds)
	deposits.Sub(deposits, result.UnclaimedRefunds)
	if deposits.Sign() < 0 {
		return nil, fmt.Errorf("%w: deposit pot %s can't cover the deposits of %d retiring pools (%s)",
			ErrArithmeticInconsistency, previous, len(retired), numeric.Add(result.Refunds, result.UnclaimedRefunds))
	}
	result.Deposits = deposits
	return result, nil
}
