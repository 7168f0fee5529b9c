package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"lumenstake/config"
	"lumenstake/native/bank"
	"lumenstake/native/lpstaking"
	"lumenstake/observability/logging"
	"lumenstake/rpc"
	"lumenstake/storage"
)

const rpcTokenEnv = "LUMENSTAKE_RPC_TOKEN"

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("LUMENSTAKE_ENV"))
	logger := logging.Setup("lumenstaked", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "lumenstake"))
	if err != nil {
		logger.Error("failed to open database", "error", err, "dataDir", cfg.DataDir)
		os.Exit(1)
	}
	defer db.Close()

	keeper := lpstaking.NewKeeper(db)
	ledger := bank.NewLedger(db)

	engine := lpstaking.NewEngine()
	engine.SetState(keeper)
	engine.SetToken(ledger)

	if err := bootstrap(engine, cfg); err != nil {
		logger.Error("failed to bootstrap staking module", "error", err)
		os.Exit(1)
	}

	authToken := strings.TrimSpace(os.Getenv(rpcTokenEnv))
	if authToken == "" {
		authToken = cfg.RPCAuthToken
	}
	if authToken == "" {
		logger.Warn("no RPC auth token configured; mutating RPC methods are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := rpc.NewServer(engine, authToken)
	logger.Info("starting JSON-RPC server",
		"address", cfg.RPCAddress,
		"network", cfg.NetworkName,
		"token", cfg.TokenSymbol,
	)
	if err := server.Start(ctx, cfg.RPCAddress); err != nil {
		logger.Error("rpc server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// bootstrap performs one-time initialization from config when the module has
// no admin yet. A previously initialized store is left untouched.
func bootstrap(engine *lpstaking.Engine, cfg *config.Config) error {
	if _, ok, err := engine.Admin(); err != nil {
		return err
	} else if ok {
		return nil
	}
	admin, configured, err := cfg.Admin()
	if err != nil {
		return err
	}
	if !configured {
		return fmt.Errorf("store is uninitialized and no AdminAddress is configured")
	}
	if err := engine.Initialize(admin, admin, cfg.RewardRate()); err != nil {
		if errors.Is(err, lpstaking.ErrAlreadyInitialized) {
			return nil
		}
		return err
	}
	return nil
}
