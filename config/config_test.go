package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lumenstake/crypto"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.Equal(t, "127.0.0.1:8551", cfg.RPCAddress)
	require.Equal(t, "LMNR", cfg.TokenSymbol)
	require.Equal(t, big.NewInt(462_962_963), cfg.RewardRate())

	_, configured, err := cfg.Admin()
	require.NoError(t, err)
	require.False(t, configured)
}

func TestLoadExistingFile(t *testing.T) {
	admin := crypto.NewAddress(crypto.LumePrefix, make([]byte, 20)).String()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `RPCAddress = "0.0.0.0:9000"
DataDir = "/tmp/lumenstake"
RewardRatePerSec = "1000"
AdminAddress = "` + admin + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.RPCAddress)
	require.Equal(t, big.NewInt(1000), cfg.RewardRate())
	// Omitted fields fall back to defaults.
	require.Equal(t, "lumenstake-local", cfg.NetworkName)

	decoded, configured, err := cfg.Admin()
	require.NoError(t, err)
	require.True(t, configured)
	require.Equal(t, [20]byte{}, decoded)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{RewardRatePerSec: "not-a-number"}
	require.Error(t, cfg.Validate())

	cfg = &Config{RewardRatePerSec: "-1"}
	require.Error(t, cfg.Validate())

	cfg = &Config{RewardRatePerSec: "5", AdminAddress: "lume1garbage"}
	require.Error(t, cfg.Validate())

	cfg = &Config{RewardRatePerSec: "5"}
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`RewardRatePerSec = "abc"`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
