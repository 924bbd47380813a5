package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/blockblu-io/rewards-verifier/pkg/db/sqlite"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSnapshots = "../../pkg/chain/snapshot/testdata"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	app.Writer = &buf
	err := app.RunContext(context.Background(), append([]string{"rewards-verifier"}, args...))
	return buf.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := runApp(t, "--snapshot-dir", testSnapshots, "--workers", "2",
		"validate", "--from", "300", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "pool1test")
	assert.Contains(t, out, "reserves")
}

func TestComputeCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := runApp(t, "--snapshot-dir", testSnapshots, "compute", "--from", "300",
		"--store", "--db-path", dir, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "13991847704213937")
	assert.Contains(t, out, "pool1test")

	idb, err := sqlite.NewSQLiteDB(dir)
	require.NoError(t, err)
	defer idb.Close()
	stored, err := idb.GetEpochResult(context.Background(), 300)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "13991847704213937", stored.Reserves.String())
	assert.Equal(t, "mainnet", stored.Network)
}

func TestCommandErrors(t *testing.T) {
	_, err := runApp(t, "--snapshot-dir", testSnapshots, "compute", "--from", "300", "--to", "299")
	assert.Error(t, err)
	_, err = runApp(t, "--snapshot-dir", testSnapshots, "--network", "guildnet",
		"compute", "--from", "300")
	assert.Error(t, err)
	_, err = runApp(t, "--snapshot-dir", testSnapshots, "validate", "--from", "301")
	assert.Error(t, err)
	_, err = runApp(t, "--level", "loud", "validate", "--from", "300")
	assert.Error(t, err)
}
