package config

import (
	"fmt"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/krazyTry/launchpad-go/store"
)

// Config holds settings shared by every launchpad command.
type Config struct {
	DataDir           string
	Store             store.Backend
	CacheSize         int
	LogLevel          string
	PGDSN             string
	DestinationConfig solanago.PublicKey
	AutoMigrate       bool
	CpAmmFeeBps       uint64
	SlippageBps       uint16
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data-dir", "./data/ledger")
	v.SetDefault("store", string(store.BackendPebble))
	v.SetDefault("cache-size", 4096)
	v.SetDefault("log-level", "info")
	v.SetDefault("auto-migrate", false)
	v.SetDefault("cpamm-fee-bps", 25)
	v.SetDefault("slippage-bps", 100)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("launchpad")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DataDir:     v.GetString("data-dir"),
		Store:       store.Backend(v.GetString("store")),
		CacheSize:   v.GetInt("cache-size"),
		LogLevel:    v.GetString("log-level"),
		PGDSN:       v.GetString("pg-dsn"),
		AutoMigrate: v.GetBool("auto-migrate"),
		CpAmmFeeBps: v.GetUint64("cpamm-fee-bps"),
	}

	slippage := v.GetUint("slippage-bps")
	if slippage > 10_000 {
		return Config{}, fmt.Errorf("slippage-bps %d above 10000", slippage)
	}
	cfg.SlippageBps = uint16(slippage)

	if raw := v.GetString("destination-config"); raw != "" {
		key, err := solanago.PublicKeyFromBase58(raw)
		if err != nil {
			return Config{}, fmt.Errorf("destination-config: %w", err)
		}
		cfg.DestinationConfig = key
	}

	switch cfg.Store {
	case store.BackendMemory, store.BackendPebble, store.BackendLevelDB:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
	return cfg, nil
}
