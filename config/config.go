package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lumenstake/crypto"
)

// Config holds the daemon configuration loaded from TOML.
type Config struct {
	RPCAddress       string `toml:"RPCAddress"`
	DataDir          string `toml:"DataDir"`
	NetworkName      string `toml:"NetworkName"`
	RPCAuthToken     string `toml:"RPCAuthToken"`
	AdminAddress     string `toml:"AdminAddress"`
	RewardRatePerSec string `toml:"RewardRatePerSec"`
	TokenSymbol      string `toml:"TokenSymbol"`
}

const defaultConfig = `# lumenstaked configuration
RPCAddress = "127.0.0.1:8551"
DataDir = "./lumenstake-data"
NetworkName = "lumenstake-local"
# Bearer token required for admin RPC methods. Leave empty to disable admin RPC.
RPCAuthToken = ""
# bech32 address that holds the admin role at first boot.
AdminAddress = ""
# LMNR base units minted per second across all pools.
RewardRatePerSec = "462962963"
TokenSymbol = "LMNR"
`

// Load reads the configuration at path, creating a commented default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func createDefault(path string) (*Config, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if _, err := toml.Decode(defaultConfig, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.RPCAddress) == "" {
		cfg.RPCAddress = "127.0.0.1:8551"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./lumenstake-data"
	}
	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "lumenstake-local"
	}
	if strings.TrimSpace(cfg.TokenSymbol) == "" {
		cfg.TokenSymbol = "LMNR"
	}
	if strings.TrimSpace(cfg.RewardRatePerSec) == "" {
		cfg.RewardRatePerSec = "0"
	}
}

// Validate checks field formats without touching the filesystem.
func (cfg *Config) Validate() error {
	if _, ok := new(big.Int).SetString(strings.TrimSpace(cfg.RewardRatePerSec), 10); !ok {
		return fmt.Errorf("config: RewardRatePerSec %q is not a decimal integer", cfg.RewardRatePerSec)
	}
	if rate, _ := new(big.Int).SetString(strings.TrimSpace(cfg.RewardRatePerSec), 10); rate.Sign() < 0 {
		return fmt.Errorf("config: RewardRatePerSec must not be negative")
	}
	if addr := strings.TrimSpace(cfg.AdminAddress); addr != "" {
		if _, err := crypto.DecodeAddress(addr); err != nil {
			return fmt.Errorf("config: invalid AdminAddress: %w", err)
		}
	}
	return nil
}

// RewardRate parses the configured per-second reward rate.
func (cfg *Config) RewardRate() *big.Int {
	rate, ok := new(big.Int).SetString(strings.TrimSpace(cfg.RewardRatePerSec), 10)
	if !ok {
		return big.NewInt(0)
	}
	return rate
}

// Admin parses the configured admin address, reporting whether one is set.
func (cfg *Config) Admin() ([20]byte, bool, error) {
	var out [20]byte
	addr := strings.TrimSpace(cfg.AdminAddress)
	if addr == "" {
		return out, false, nil
	}
	decoded, err := crypto.DecodeAddress(addr)
	if err != nil {
		return out, false, err
	}
	copy(out[:], decoded.Bytes())
	return out, true, nil
}
