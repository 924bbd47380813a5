package era

import (
	"fmt"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// Network holds the genesis constants and hard-fork epochs of one Cardano
// network. All epochs are absolute epoch numbers.
type Network struct {
	// Name is the identifier of the network, e.g. "mainnet".
	Name string
	// TotalLovelace is the maximal supply of lovelace.
	TotalLovelace *big.Int
	// ShelleyStartEpoch is the first epoch with Shelley reward accounting.
	ShelleyStartEpoch int
	// ShelleyStartSlot is the absolute slot at which ShelleyStartEpoch begins.
	ShelleyStartSlot uint64
	// ByronSlotsPerEpoch is the epoch length before ShelleyStartEpoch.
	ByronSlotsPerEpoch uint64
	// ExpectedSlotsPerEpoch is the epoch length from ShelleyStartEpoch on.
	ExpectedSlotsPerEpoch uint64
	// ActiveSlotCoefficient is the fraction of slots expected to carry a block.
	ActiveSlotCoefficient decimal.Decimal
	// SecurityParameter is the consensus parameter k.
	SecurityParameter uint64
	// InitialReserves, InitialTreasury and InitialUtxo are the pots emitted
	// for ShelleyStartEpoch.
	InitialReserves *big.Int
	InitialTreasury *big.Int
	InitialUtxo     *big.Int
	// AllegraHardForkEpoch, MaryHardForkEpoch, AlonzoHardForkEpoch and
	// VasilHardForkEpoch are the first epochs of the respective eras.
	AllegraHardForkEpoch int
	MaryHardForkEpoch    int
	AlonzoHardForkEpoch  int
	VasilHardForkEpoch   int
	// BootstrapAddressAmount is returned to the reserves at the Allegra
	// boundary when the Byron redeem addresses were removed from the UTxO.
	BootstrapAddressAmount *big.Int
	// PoolDeposit is used when neither the pool nor the protocol parameters
	// carry a deposit amount.
	PoolDeposit *big.Int
	// Corrections is the known-anomaly table for this network.
	Corrections *Corrections
}

// Mainnet returns the constants of the Cardano main network.
func Mainnet() *Network {
	return &Network{
		Name:                   "mainnet",
		TotalLovelace:          mustLovelace("45000000000000000"),
		ShelleyStartEpoch:      208,
		ShelleyStartSlot:       4_492_800,
		ByronSlotsPerEpoch:     21_600,
		ExpectedSlotsPerEpoch:  432_000,
		ActiveSlotCoefficient:  decimal.RequireFromString("0.05"),
		SecurityParameter:      2160,
		InitialReserves:        mustLovelace("13888022852926644"),
		InitialTreasury:        mustLovelace("0"),
		InitialUtxo:            mustLovelace("31111977147073356"),
		AllegraHardForkEpoch:   236,
		MaryHardForkEpoch:      251,
		AlonzoHardForkEpoch:    290,
		VasilHardForkEpoch:     365,
		BootstrapAddressAmount: mustLovelace("318200635000000"),
		PoolDeposit:            mustLovelace("500000000"),
		Corrections:            MainnetCorrections(),
	}
}

// networkFile is the YAML layout of a network definition. Amounts and
// ratios are kept as strings so that no value passes through a float.
type networkFile struct {
	Name                   string           `yaml:"name"`
	TotalLovelace          string           `yaml:"totalLovelace"`
	ShelleyStartEpoch      int              `yaml:"shelleyStartEpoch"`
	ShelleyStartSlot       uint64           `yaml:"shelleyStartSlot"`
	ByronSlotsPerEpoch     uint64           `yaml:"byronSlotsPerEpoch"`
	ExpectedSlotsPerEpoch  uint64           `yaml:"expectedSlotsPerEpoch"`
	ActiveSlotCoefficient  string           `yaml:"activeSlotCoefficient"`
	SecurityParameter      uint64           `yaml:"securityParameter"`
	InitialReserves        string           `yaml:"initialReserves"`
	InitialTreasury        string           `yaml:"initialTreasury"`
	InitialUtxo            string           `yaml:"initialUtxo"`
	AllegraHardForkEpoch   int              `yaml:"allegraHardForkEpoch"`
	MaryHardForkEpoch      int              `yaml:"maryHardForkEpoch"`
	AlonzoHardForkEpoch    int              `yaml:"alonzoHardForkEpoch"`
	VasilHardForkEpoch     int              `yaml:"vasilHardForkEpoch"`
	BootstrapAddressAmount string           `yaml:"bootstrapAddressAmount"`
	PoolDeposit            string           `yaml:"poolDeposit"`
	Corrections            []correctionFile `yaml:"corrections"`
	MissingRewards         []missingFile    `yaml:"missingRewards"`
}

type correctionFile struct {
	Epoch  int    `yaml:"epoch"`
	PoolID string `yaml:"poolId"`
	Amount string `yaml:"amount"`
	Source string `yaml:"source"`
}

type missingFile struct {
	Epoch        int    `yaml:"epoch"`
	StakeAddress string `yaml:"stakeAddress"`
	PoolID       string `yaml:"poolId"`
	Type         string `yaml:"type"`
	Source       string `yaml:"source"`
}

// LoadNetwork reads a network definition from the YAML file at path.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseNetwork(data)
}

// ParseNetwork parses a YAML network definition.
func ParseNetwork(data []byte) (*Network, error) {
	var file networkFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("couldn't parse the network definition: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("the network definition has no name")
	}
	if file.ExpectedSlotsPerEpoch == 0 {
		return nil, fmt.Errorf("network %s: expectedSlotsPerEpoch must be positive", file.Name)
	}
	p := parser{}
	network := &Network{
		Name:                   file.Name,
		TotalLovelace:          p.lovelace("totalLovelace", file.TotalLovelace),
		ShelleyStartEpoch:      file.ShelleyStartEpoch,
		ShelleyStartSlot:       file.ShelleyStartSlot,
		ByronSlotsPerEpoch:     file.ByronSlotsPerEpoch,
		ExpectedSlotsPerEpoch:  file.ExpectedSlotsPerEpoch,
		ActiveSlotCoefficient:  p.ratio("activeSlotCoefficient", file.ActiveSlotCoefficient),
		SecurityParameter:      file.SecurityParameter,
		InitialReserves:        p.lovelace("initialReserves", file.InitialReserves),
		InitialTreasury:        p.lovelace("initialTreasury", file.InitialTreasury),
		InitialUtxo:            p.lovelace("initialUtxo", file.InitialUtxo),
		AllegraHardForkEpoch:   file.AllegraHardForkEpoch,
		MaryHardForkEpoch:      file.MaryHardForkEpoch,
		AlonzoHardForkEpoch:    file.AlonzoHardForkEpoch,
		VasilHardForkEpoch:     file.VasilHardForkEpoch,
		BootstrapAddressAmount: p.lovelace("bootstrapAddressAmount", file.BootstrapAddressAmount),
		PoolDeposit:            p.lovelace("poolDeposit", file.PoolDeposit),
	}
	corrections := &Corrections{
		Version:        file.Name,
		PoolAdjustment: map[PoolEpoch]Adjustment{},
		MissingRewards: map[int][]MissingReward{},
	}
	for _, c := range file.Corrections {
		if c.Source == "" {
			return nil, fmt.Errorf("correction for pool %s in epoch %d has no source", c.PoolID, c.Epoch)
		}
		corrections.PoolAdjustment[PoolEpoch{Epoch: c.Epoch, PoolID: c.PoolID}] = Adjustment{
			Amount: p.lovelace("corrections.amount", c.Amount),
			Source: c.Source,
		}
	}
	for _, m := range file.MissingRewards {
		if m.Source == "" {
			return nil, fmt.Errorf("missing reward of %s in epoch %d has no source", m.StakeAddress, m.Epoch)
		}
		corrections.MissingRewards[m.Epoch] = append(corrections.MissingRewards[m.Epoch], MissingReward{
			StakeAddress: m.StakeAddress,
			PoolID:       m.PoolID,
			Type:         m.Type,
			Source:       m.Source,
		})
	}
	network.Corrections = corrections
	if p.err != nil {
		return nil, fmt.Errorf("network %s: %w", file.Name, p.err)
	}
	return network, nil
}

// ByName returns the built-in network with the given name.
func ByName(name string) (*Network, error) {
	switch name {
	case "mainnet", "":
		return Mainnet(), nil
	}
	return nil, fmt.Errorf("unknown network '%s', pass a network definition file instead", name)
}

// parser keeps the first conversion error so that a whole file can be
// converted without checking every field.
type parser struct {
	err error
}

func (p *parser) lovelace(field, value string) *big.Int {
	if value == "" {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(value, 10)
	if !ok && p.err == nil {
		p.err = fmt.Errorf("%s: '%s' isn't an integer", field, value)
	}
	if v == nil {
		return new(big.Int)
	}
	return v
}

func (p *parser) ratio(field, value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
	return d
}

func mustLovelace(value string) *big.Int {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("era: invalid lovelace constant " + value)
	}
	return v
}
