package rewards

import (
	"math/big"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/shopspring/decimal"
)

func lovelace(t *testing.T, v string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		t.Fatalf("invalid lovelace amount %s", v)
	}
	return n
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mainnetPolicy() *era.Policy {
	return era.NewPolicy(era.Mainnet())
}

func testParameters() *ProtocolParameters {
	return &ProtocolParameters{
		TreasuryGrowthRate: dec("0.2"),
		MonetaryExpandRate: dec("0.003"),
		Decentralisation:   decimal.Zero,
		OptimalPoolCount:   500,
		PoolOwnerInfluence: dec("0.3"),
		PoolDeposit:        big.NewInt(500_000_000),
	}
}

// testPool is a pool holding 40M ada with a 1M ada pledge, backed by 1.2M
// ada of owner stake and two members.
func testPool(t *testing.T) *PoolState {
	return &PoolState{
		PoolID:           "pool1test",
		RewardAddress:    "stake1reward",
		ActiveStake:      lovelace(t, "40000000000000"),
		Pledge:           lovelace(t, "1000000000000"),
		Margin:           dec("0.02"),
		FixedCost:        big.NewInt(340_000_000),
		BlockCount:       30,
		Owners:           NewSet("stake1owner"),
		OwnerActiveStake: lovelace(t, "1200000000000"),
		Delegators: []Delegator{
			{StakeAddress: "stake1owner", ActiveStake: lovelace(t, "1200000000000")},
			{StakeAddress: "stake1alice", ActiveStake: lovelace(t, "20000000000000")},
			{StakeAddress: "stake1bob", ActiveStake: lovelace(t, "18800000000000")},
		},
	}
}

func registeredFacts(addresses ...string) *RegistrationFacts {
	return &RegistrationFacts{
		AccountsRegisteredInThePast: NewSet(addresses...),
		RegisteredAccountsUntilNow:  NewSet(addresses...),
	}
}
