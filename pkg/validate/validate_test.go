package validate

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/chain"
	"github.com/blockblu-io/rewards-verifier/pkg/chain/snapshot"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards"
	"github.com/blockblu-io/rewards-verifier/pkg/rewards/era"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testResult() *rewards.EpochResult {
	return &rewards.EpochResult{
		Epoch:            300,
		Reserves:         big.NewInt(1_000),
		Treasury:         big.NewInt(500),
		TotalRewardsPot:  big.NewInt(100),
		Deposits:         big.NewInt(20),
		Utxo:             big.NewInt(3_000),
		AdaInCirculation: big.NewInt(4_000),
		PerPoolResults: []*rewards.PoolRewardResult{
			{PoolID: "pool1a", PoolReward: big.NewInt(60), OperatorReward: big.NewInt(10)},
			{PoolID: "pool1b", PoolReward: big.NewInt(30), OperatorReward: big.NewInt(5)},
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pots := chain.NewMockPotSource(ctrl)
	observations := chain.NewMockObservationSource(ctrl)
	pots.EXPECT().AdaPots(gomock.Any(), 300).Return(&rewards.AdaPots{
		Epoch:    300,
		Reserves: big.NewInt(1_000),
		Treasury: big.NewInt(499),
	}, nil)
	observations.EXPECT().ObservedPoolReward(gomock.Any(), 300, "pool1a").Return(&chain.ObservedPoolReward{
		PoolID: "pool1a", Epoch: 300, Rewards: big.NewInt(60), Fees: big.NewInt(12),
	}, nil)
	observations.EXPECT().ObservedPoolReward(gomock.Any(), 300, "pool1b").Return(nil, chain.ErrEpochNotFound)

	report, err := NewValidator(pots, observations).Validate(ctx, testResult())
	require.NoError(t, err)
	assert.Len(t, report.Comparisons, 4)
	assert.Equal(t, []string{"pool1b"}, report.Unobserved)

	mismatches := report.Mismatches()
	require.Len(t, mismatches, 2)
	assert.Equal(t, PotsSubject, mismatches[0].Subject)
	assert.Equal(t, "treasury", mismatches[0].Field)
	assert.Equal(t, "1", mismatches[0].Delta().String())
	assert.Equal(t, "pool1a", mismatches[1].Subject)
	assert.Equal(t, "operatorReward", mismatches[1].Field)
	assert.Equal(t, "-2", mismatches[1].Delta().String())

	err = report.Err()
	assert.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "2 of 4")
}

func TestValidator_WithoutObservations(t *testing.T) {
	ctrl := gomock.NewController(t)
	pots := chain.NewMockPotSource(ctrl)
	pots.EXPECT().AdaPots(gomock.Any(), 300).Return(&rewards.AdaPots{
		Epoch:            300,
		Reserves:         big.NewInt(1_000),
		Treasury:         big.NewInt(500),
		RewardsPot:       big.NewInt(100),
		Deposits:         big.NewInt(20),
		Utxo:             big.NewInt(3_000),
		AdaInCirculation: big.NewInt(4_000),
	}, nil)

	report, err := NewValidator(pots, nil).Validate(context.Background(), testResult())
	require.NoError(t, err)
	assert.Len(t, report.Comparisons, 5)
	assert.Empty(t, report.Mismatches())
	assert.NoError(t, report.Err())
}

func TestValidator_UtxoOnlyAtEraStart(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pots := chain.NewMockPotSource(ctrl)
	pots.EXPECT().AdaPots(gomock.Any(), 300).Return(&rewards.AdaPots{
		Epoch:    300,
		Reserves: big.NewInt(1_000),
		Utxo:     big.NewInt(3_500),
	}, nil).Times(2)

	result := testResult()
	result.State = era.SteadyState
	report, err := NewValidator(pots, nil).Validate(ctx, result)
	require.NoError(t, err)
	require.Len(t, report.Comparisons, 1)
	assert.Equal(t, "reserves", report.Comparisons[0].Field)
	assert.NoError(t, report.Err())

	result.State = era.EraStart
	report, err = NewValidator(pots, nil).Validate(ctx, result)
	require.NoError(t, err)
	require.Len(t, report.Comparisons, 2)
	mismatches := report.Mismatches()
	require.Len(t, mismatches, 1)
	assert.Equal(t, "utxo", mismatches[0].Field)
	assert.Equal(t, "-500", mismatches[0].Delta().String())
}

func TestValidator_SourceErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pots := chain.NewMockPotSource(ctrl)
	observations := chain.NewMockObservationSource(ctrl)
	boom := errors.New("boom")

	pots.EXPECT().AdaPots(gomock.Any(), 300).Return(nil, chain.ErrEpochNotFound)
	_, err := NewValidator(pots, observations).Validate(ctx, testResult())
	assert.ErrorIs(t, err, chain.ErrEpochNotFound)

	pots.EXPECT().AdaPots(gomock.Any(), 300).Return(&rewards.AdaPots{Epoch: 300}, nil)
	observations.EXPECT().ObservedPoolReward(gomock.Any(), 300, "pool1a").Return(nil, boom)
	_, err = NewValidator(pots, observations).Validate(ctx, testResult())
	assert.ErrorIs(t, err, boom)
}

func TestReport_Render(t *testing.T) {
	color.NoColor = true
	report := &Report{
		Epoch: 300,
		Comparisons: []Comparison{
			{Subject: PotsSubject, Field: "reserves", Computed: big.NewInt(7), Observed: big.NewInt(7)},
			{Subject: "pool1a", Field: "poolReward", Computed: big.NewInt(60), Observed: big.NewInt(61)},
		},
		Unobserved: []string{"pool1b"},
	}

	var buf bytes.Buffer
	report.Render(&buf, false)
	out := buf.String()
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "pool1a")
	assert.Contains(t, out, "-1")
	assert.Contains(t, out, "pool1b")
	assert.NotContains(t, out, "reserves")

	buf.Reset()
	report.Render(&buf, true)
	assert.Contains(t, buf.String(), "reserves")

	buf.Reset()
	(&Report{Epoch: 301}).Render(&buf, true)
	assert.Contains(t, buf.String(), "none")
	assert.NotContains(t, buf.String(), "SUBJECT")
}

func TestValidator_Snapshot(t *testing.T) {
	ctx := context.Background()
	provider, err := snapshot.NewProvider("../chain/snapshot/testdata")
	require.NoError(t, err)
	policy := era.NewPolicy(era.Mainnet())

	in, err := chain.Collect(ctx, provider, policy, 300, nil)
	require.NoError(t, err)
	result, err := rewards.NewEngine(policy, 2).ComputeEpoch(ctx, in)
	require.NoError(t, err)

	report, err := NewValidator(provider, provider).Validate(ctx, result)
	require.NoError(t, err)
	assert.Len(t, report.Comparisons, 7)
	assert.Empty(t, report.Unobserved)
	assert.Empty(t, report.Mismatches())
}
