package config

import (
	"os"
	"path/filepath"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/launchpad-go/store"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, store.BackendPebble, cfg.Store)
	assert.Equal(t, "./data/ledger", cfg.DataDir)
	assert.Equal(t, 4096, cfg.CacheSize)
	assert.Equal(t, uint64(25), cfg.CpAmmFeeBps)
	assert.Equal(t, uint16(100), cfg.SlippageBps)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.DestinationConfig.IsZero())
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	destination := solanago.NewWallet().PublicKey()
	path := filepath.Join(dir, "launchpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: leveldb\ncache-size: 16\ndestination-config: "+destination.String()+"\n"), 0o600))

	t.Setenv("LAUNCHPAD_AUTO_MIGRATE", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, store.BackendLevelDB, cfg.Store)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, destination, cfg.DestinationConfig)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("LAUNCHPAD_STORE", "rocksdb")
	_, err := Load("", nil)
	assert.Error(t, err)

	t.Setenv("LAUNCHPAD_STORE", "memory")
	t.Setenv("LAUNCHPAD_DESTINATION_CONFIG", "not-a-key")
	_, err = Load("", nil)
	assert.Error(t, err)

	t.Setenv("LAUNCHPAD_DESTINATION_CONFIG", "")
	t.Setenv("LAUNCHPAD_SLIPPAGE_BPS", "20000")
	_, err = Load("", nil)
	assert.Error(t, err)
}
