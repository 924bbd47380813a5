package rewards

import (
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
)

// AdaPots is the snapshot of all pots at an epoch boundary.
type AdaPots struct {
	Epoch            int
	Reserves         *big.Int
	Treasury         *big.Int
	RewardsPot       *big.Int
	Deposits         *big.Int
	Utxo             *big.Int
	AdaInCirculation *big.Int
}

// ProtocolParameters are the governance set constants valid for one epoch.
type ProtocolParameters struct {
	Epoch int
	// TreasuryGrowthRate is tau.
	TreasuryGrowthRate decimal.Decimal
	// MonetaryExpandRate is rho.
	MonetaryExpandRate decimal.Decimal
	// Decentralisation is d.
	Decentralisation decimal.Decimal
	// OptimalPoolCount is nOpt (k).
	OptimalPoolCount int
	// PoolOwnerInfluence is a0.
	PoolOwnerInfluence decimal.Decimal
	PoolDeposit        *big.Int
	// ProtocolMajorVersion is informational only.
	ProtocolMajorVersion int
}

// EpochInfo are the chain facts of one epoch.
type EpochInfo struct {
	Epoch             int
	Fees              *big.Int
	BlockCount        int
	OBFTBlockCount    int
	NonOBFTBlockCount int
	ActiveStake       *big.Int
}

// Delegator is a member's stake delegated to a pool in one epoch.
type Delegator struct {
	StakeAddress string
	ActiveStake  *big.Int
}

// PoolState is one pool's facts in one epoch.
type PoolState struct {
	PoolID           string
	Epoch            int
	RewardAddress    string
	ActiveStake      *big.Int
	Pledge           *big.Int
	Margin           decimal.Decimal
	FixedCost        *big.Int
	BlockCount       int
	Owners           map[string]struct{}
	OwnerActiveStake *big.Int
	Delegators       []Delegator
}

// IsOwner reports whether the stake address is one of the pool owners.
func (p *PoolState) IsOwner(stakeAddress string) bool {
	_, found := p.Owners[stakeAddress]
	return found
}

// RetiredPool is a pool whose retirement takes effect in the epoch.
type RetiredPool struct {
	PoolID        string
	RewardAddress string
	DepositAmount *big.Int
}

// MirPot is the pot a MIR certificate draws on.
type MirPot int

const (
	MirPotReserves MirPot = iota
	MirPotTreasury
)

func (p MirPot) String() string {
	if p == MirPotTreasury {
		return "TREASURY"
	}
	return "RESERVES"
}

// MirCertificate is a move instantaneous rewards transfer.
type MirCertificate struct {
	Pot          MirPot
	TotalRewards *big.Int
}

// RewardType distinguishes operator from member rewards.
type RewardType int

const (
	RewardTypeLeader RewardType = iota
	RewardTypeMember
)

func (t RewardType) String() string {
	if t == RewardTypeMember {
		return "member"
	}
	return "leader"
}

// Reward is one payment to a stake address.
type Reward struct {
	StakeAddress string
	Amount       *big.Int
	Type         RewardType
	PoolID       string
}

// PoolRewardResult is the reward computation of one pool.
type PoolRewardResult struct {
	PoolID              string
	Epoch               int
	RewardAddress       string
	ApparentPerformance decimal.Decimal
	OptimalPoolReward   *big.Int
	PoolReward          *big.Int
	// OperatorReward is the leader reward before the deliverability filter.
	OperatorReward *big.Int
	// MemberRewards holds only deliverable member rewards.
	MemberRewards []Reward
	// DistributedPoolReward is the deliverable operator reward plus the sum
	// of MemberRewards.
	DistributedPoolReward    *big.Int
	UnspendableEarnedRewards *big.Int
	Margin                   decimal.Decimal
	FixedCost                *big.Int
	// Correction is the known anomaly correction applied to OperatorReward.
	Correction *big.Int
	// OperatorRewardDelivered is false when the leader reward was withheld.
	OperatorRewardDelivered bool
}

// RegistrationFacts are the account registration sets relevant to the
// deliverability of rewards at one epoch boundary.
type RegistrationFacts struct {
	// DeregisteredAccounts were deregistered before the end of the
	// stabilization window.
	DeregisteredAccounts map[string]struct{}
	// LateDeregisteredAccounts were deregistered after the window but
	// before the epoch boundary.
	LateDeregisteredAccounts map[string]struct{}
	// AccountsRegisteredInThePast were registered at some point up to the
	// epoch boundary.
	AccountsRegisteredInThePast map[string]struct{}
	// RegisteredAccountsUntilNow were registered at the end of the window.
	RegisteredAccountsUntilNow map[string]struct{}
	// DeregisteredAccountsOnEpochBoundary were not registered at the epoch
	// boundary.
	DeregisteredAccountsOnEpochBoundary map[string]struct{}
	// SuppressedLeaderRewards lists pools whose leader reward was lost to
	// the shared reward address aggregation.
	SuppressedLeaderRewards map[string]struct{}
}

func has(set map[string]struct{}, key string) bool {
	_, found := set[key]
	return found
}

// NewSet builds a string set.
func NewSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// DiagnosticKind classifies a diagnostic record.
type DiagnosticKind string

const (
	MissingPoolState     DiagnosticKind = "MISSING_POOL_STATE"
	MissingDelegatorData DiagnosticKind = "MISSING_DELEGATOR_STAKE"
	WithheldReward       DiagnosticKind = "WITHHELD_REWARD"
	CorrectionApplied    DiagnosticKind = "CORRECTION_APPLIED"
)

// Diagnostic records data that was missing or adjusted while computing an
// epoch. It never aborts the computation.
type Diagnostic struct {
	Kind         DiagnosticKind
	PoolID       string
	StakeAddress string
	Message      string
}

// EpochInputs bundles everything ComputeEpoch needs for one boundary.
type EpochInputs struct {
	Epoch int
	// PreviousPots are the pots of epoch-1.
	PreviousPots *AdaPots
	// Parameters and Info belong to epoch-2.
	Parameters *ProtocolParameters
	Info       *EpochInfo
	// RetiredPools retire exactly at Epoch.
	RetiredPools []RetiredPool
	// MirCertificates were issued in epoch-1.
	MirCertificates []MirCertificate
	// PoolStates are the pools of epoch-2.
	PoolStates map[string]*PoolState
	// BlockProducers lists the pools that minted blocks in epoch-2. Pools
	// with blocks but no PoolState yield a diagnostic.
	BlockProducers []string
	Facts          *RegistrationFacts
	// PoolRegistrations are the new pool deposits paid in epoch-1.
	PoolRegistrations []PoolRegistration
}

// EpochResult is the outcome of one epoch boundary.
type EpochResult struct {
	Epoch                         int
	State                         era.Phase
	Reserves                      *big.Int
	Treasury                      *big.Int
	Deposits                      *big.Int
	Utxo                          *big.Int
	AdaInCirculation              *big.Int
	TotalRewardsPot               *big.Int
	TotalPoolRewardsPot           *big.Int
	TotalDistributedRewards       *big.Int
	TotalUndistributedRewards     *big.Int
	TotalUnspendableEarnedRewards *big.Int
	TotalUnclaimedRefunds         *big.Int
	TreasuryWithdrawals           *big.Int
	ReservesWithdrawals           *big.Int
	TreasuryCut                   *big.Int
	Fees                          *big.Int
	Eta                           decimal.Decimal
	PerPoolResults                []*PoolRewardResult
	Diagnostics                   []Diagnostic
}

// Pots returns the AdaPots emitted for the epoch, ready to be passed as
// previous pots of the next boundary.
func (r *EpochResult) Pots() *AdaPots {
	return &AdaPots{
		Epoch:            r.Epoch,
		Reserves:         r.Reserves,
		Treasury:         r.Treasury,
		RewardsPot:       r.TotalRewardsPot,
		Deposits:         r.Deposits,
		Utxo:             r.Utxo,
		AdaInCirculation: r.AdaInCirculation,
	}
}
