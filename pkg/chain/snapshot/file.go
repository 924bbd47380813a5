package snapshot

import (
	"fmt"
	"math/big"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/shopspring/decimal"
)

// epochFile is the content of one snapshot file. Amounts are JSON numbers
// in lovelace, ratios are decimal strings or numbers.
type epochFile struct {
	Epoch int `json:"epoch"`
	// Pots are the pots recorded at the boundary of the epoch.
	Pots *potsFile `json:"pots,omitempty"`
	// Parameters are the protocol parameters in force during the epoch.
	Parameters *parametersFile `json:"parameters,omitempty"`
	// Info holds the fees, block counts and active stake of the epoch.
	Info *infoFile `json:"info,omitempty"`
	// Pools is the stake snapshot of the epoch with the produced blocks.
	Pools []poolFile `json:"pools,omitempty"`
	// PoolCertificates are the certificates of the pools retiring at the
	// boundary of the epoch.
	PoolCertificates []certificateFile `json:"poolCertificates,omitempty"`
	// PoolRegistrations are the pool deposits paid during the epoch.
	PoolRegistrations []registrationFile `json:"poolRegistrations,omitempty"`
	// AccountEvents is the history of the accounts relevant for the
	// boundary of the epoch.
	AccountEvents []accountEventFile `json:"accountEvents,omitempty"`
	// MirCertificates are the MIR certificates issued during the epoch.
	MirCertificates         []mirFile `json:"mirCertificates,omitempty"`
	SuppressedLeaderRewards []string  `json:"suppressedLeaderRewards,omitempty"`
	// ObservedPoolRewards are the pool rewards paid at the boundary of the
	// epoch.
	ObservedPoolRewards []observedFile `json:"observedPoolRewards,omitempty"`
}

type potsFile struct {
	Reserves         *big.Int `json:"reserves"`
	Treasury         *big.Int `json:"treasury"`
	Rewards          *big.Int `json:"rewards"`
	Deposits         *big.Int `json:"deposits"`
	Utxo             *big.Int `json:"utxo"`
	AdaInCirculation *big.Int `json:"adaInCirculation"`
}

type parametersFile struct {
	TreasuryGrowthRate   decimal.Decimal `json:"tau"`
	MonetaryExpandRate   decimal.Decimal `json:"rho"`
	Decentralisation     decimal.Decimal `json:"decentralisation"`
	OptimalPoolCount     int             `json:"nOpt"`
	PoolOwnerInfluence   decimal.Decimal `json:"a0"`
	PoolDeposit          *big.Int        `json:"poolDeposit"`
	ProtocolMajorVersion int             `json:"protocolMajorVersion"`
}

type infoFile struct {
	Fees              *big.Int `json:"fees"`
	BlockCount        int      `json:"blockCount"`
	OBFTBlockCount    int      `json:"obftBlockCount"`
	NonOBFTBlockCount int      `json:"nonObftBlockCount"`
	ActiveStake       *big.Int `json:"activeStake"`
	// BlockProducers lists the pools that minted blocks. The pools with
	// blocks are taken, if it is absent.
	BlockProducers []string `json:"blockProducers,omitempty"`
}

type delegatorFile struct {
	StakeAddress string   `json:"stakeAddress"`
	ActiveStake  *big.Int `json:"activeStake"`
}

type poolFile struct {
	PoolID        string          `json:"poolId"`
	RewardAddress string          `json:"rewardAddress"`
	ActiveStake   *big.Int        `json:"activeStake"`
	Pledge        *big.Int        `json:"pledge"`
	Margin        decimal.Decimal `json:"margin"`
	FixedCost     *big.Int        `json:"fixedCost"`
	BlockCount    int             `json:"blockCount"`
	Owners        []string        `json:"owners"`
	// OwnerActiveStake defaults to the stake delegated by the owners.
	OwnerActiveStake *big.Int        `json:"ownerActiveStake,omitempty"`
	Delegators       []delegatorFile `json:"delegators"`
}

type certificateFile struct {
	PoolID string `json:"poolId"`
	// Kind is either "registration" or "retirement".
	Kind          string   `json:"kind"`
	Slot          uint64   `json:"slot"`
	TxIndex       int      `json:"txIndex"`
	CertIndex     int      `json:"certIndex"`
	RetiringEpoch int      `json:"retiringEpoch,omitempty"`
	RewardAddress string   `json:"rewardAddress,omitempty"`
	Deposit       *big.Int `json:"deposit,omitempty"`
}

type registrationFile struct {
	PoolID  string   `json:"poolId"`
	Deposit *big.Int `json:"deposit"`
}

type accountEventFile struct {
	StakeAddress string `json:"stakeAddress"`
	// Kind is either "registration" or "deregistration".
	Kind      string `json:"kind"`
	Slot      uint64 `json:"slot"`
	TxIndex   int    `json:"txIndex"`
	CertIndex int    `json:"certIndex"`
}

type mirFile struct {
	// Pot is either "reserves" or "treasury".
	Pot          string   `json:"pot"`
	TotalRewards *big.Int `json:"totalRewards"`
}

type observedFile struct {
	PoolID  string   `json:"poolId"`
	Rewards *big.Int `json:"rewards"`
	Fees    *big.Int `json:"fees"`
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func (f *potsFile) toAdaPots(epoch int) *rewards.AdaPots {
	return &rewards.AdaPots{
		Epoch:            epoch,
		Reserves:         orZero(f.Reserves),
		Treasury:         orZero(f.Treasury),
		RewardsPot:       orZero(f.Rewards),
		Deposits:         orZero(f.Deposits),
		Utxo:             orZero(f.Utxo),
		AdaInCirculation: orZero(f.AdaInCirculation),
	}
}

func (f *parametersFile) toParameters(epoch int) *rewards.ProtocolParameters {
	return &rewards.ProtocolParameters{
		Epoch:                epoch,
		TreasuryGrowthRate:   f.TreasuryGrowthRate,
		MonetaryExpandRate:   f.MonetaryExpandRate,
		Decentralisation:     f.Decentralisation,
		OptimalPoolCount:     f.OptimalPoolCount,
		PoolOwnerInfluence:   f.PoolOwnerInfluence,
		PoolDeposit:          f.PoolDeposit,
		ProtocolMajorVersion: f.ProtocolMajorVersion,
	}
}

func (f *infoFile) toInfo(epoch int) *rewards.EpochInfo {
	return &rewards.EpochInfo{
		Epoch:             epoch,
		Fees:              orZero(f.Fees),
		BlockCount:        f.BlockCount,
		OBFTBlockCount:    f.OBFTBlockCount,
		NonOBFTBlockCount: f.NonOBFTBlockCount,
		ActiveStake:       orZero(f.ActiveStake),
	}
}

func (f *poolFile) toPoolState(epoch int) *rewards.PoolState {
	pool := &rewards.PoolState{
		PoolID:           f.PoolID,
		Epoch:            epoch,
		RewardAddress:    f.RewardAddress,
		ActiveStake:      f.ActiveStake,
		Pledge:           orZero(f.Pledge),
		Margin:           f.Margin,
		FixedCost:        orZero(f.FixedCost),
		BlockCount:       f.BlockCount,
		Owners:           rewards.NewSet(f.Owners...),
		OwnerActiveStake: f.OwnerActiveStake,
	}
	delegated := new(big.Int)
	owned := new(big.Int)
	for _, d := range f.Delegators {
		stake := orZero(d.ActiveStake)
		pool.Delegators = append(pool.Delegators, rewards.Delegator{StakeAddress: d.StakeAddress, ActiveStake: stake})
		delegated.Add(delegated, stake)
		if pool.IsOwner(d.StakeAddress) {
			owned.Add(owned, stake)
		}
	}
	if pool.ActiveStake == nil {
		pool.ActiveStake = delegated
	}
	if pool.OwnerActiveStake == nil {
		pool.OwnerActiveStake = owned
	}
	return pool
}

func (f *certificateFile) toCertificate() (rewards.PoolCertificate, error) {
	c := rewards.PoolCertificate{
		PoolID:        f.PoolID,
		Slot:          f.Slot,
		TxIndex:       f.TxIndex,
		CertIndex:     f.CertIndex,
		RetiringEpoch: f.RetiringEpoch,
		RewardAddress: f.RewardAddress,
		Deposit:       f.Deposit,
	}
	switch f.Kind {
	case "registration":
		c.Kind = rewards.PoolRegistrationCertificate
	case "retirement":
		c.Kind = rewards.PoolRetirementCertificate
	default:
		return c, fmt.Errorf("unknown kind '%s' of the certificate of pool '%s'", f.Kind, f.PoolID)
	}
	return c, nil
}

func (f *accountEventFile) toEvent() (rewards.AccountEvent, error) {
	e := rewards.AccountEvent{
		StakeAddress: f.StakeAddress,
		Slot:         f.Slot,
		TxIndex:      f.TxIndex,
		CertIndex:    f.CertIndex,
	}
	switch f.Kind {
	case "registration":
		e.Kind = rewards.AccountRegistration
	case "deregistration":
		e.Kind = rewards.AccountDeregistration
	default:
		return e, fmt.Errorf("unknown kind '%s' of the event of '%s'", f.Kind, f.StakeAddress)
	}
	return e, nil
}

func (f *mirFile) toMir() (rewards.MirCertificate, error) {
	m := rewards.MirCertificate{TotalRewards: orZero(f.TotalRewards)}
	switch f.Pot {
	case "reserves":
		m.Pot = rewards.MirPotReserves
	case "treasury":
		m.Pot = rewards.MirPotTreasury
	default:
		return m, fmt.Errorf("unknown MIR pot '%s'", f.Pot)
	}
	return m, nil
}

func (f *observedFile) toObserved(epoch int) *chain.ObservedPoolReward {
	return &chain.ObservedPoolReward{
		PoolID:  f.PoolID,
		Epoch:   epoch,
		Rewards: orZero(f.Rewards),
		Fees:    orZero(f.Fees),
	}
}
