// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCfgStringDefaults(t *testing.T) {
	cfg, err := InitCfgString("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultGas, cfg.Client.Gas)
	assert.Equal(t, uint64(40000000000000), cfg.Client.Gas)
	assert.Equal(t, DefaultContractID, cfg.Client.ContractID)
	assert.Equal(t, "sha256", cfg.Client.Hasher)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout())

	unit, err := cfg.Client.StakeUnitInt()
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000", unit.String())
}

func TestInitCfgStringOverride(t *testing.T) {
	cfgstring := `
Title="local"
[log]
loglevel="debug"
logFile=""
[client]
rpcLaddr="http://127.0.0.1:9901"
hasher="blake2b"
stakeUnit="1"
account="alice.testnet"
[node]
driver="goleveldb"
whitelist=["http://localhost:3000"]
[metrics]
enableMetrics=true
`
	cfg, err := InitCfgString(cfgstring)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "debug", cfg.Log.Loglevel)
	assert.Equal(t, "", cfg.Log.LogFile)
	assert.Equal(t, "http://127.0.0.1:9901", cfg.Client.RPCLaddr)
	assert.Equal(t, "blake2b", cfg.Client.Hasher)
	assert.Equal(t, "alice.testnet", cfg.Client.Account)
	assert.Equal(t, DefaultGas, cfg.Client.Gas)
	assert.Equal(t, "goleveldb", cfg.Node.Driver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Node.Whitelist)
	assert.True(t, cfg.Metrics.EnableMetrics)
}

func TestInitCfgStringInvalid(t *testing.T) {
	testCases := []string{
		`[client]
gas=0`,
		`[client]
stakeUnit="-5"`,
		`[node]
stakeUnit="abc"`,
		`[client]
timeoutSeconds=-1`,
		`Title=`,
	}
	for _, tc := range testCases {
		_, err := InitCfgString(tc)
		assert.Error(t, err, tc)
	}
}

func TestInitCfgFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treasure.toml")
	require.NoError(t, os.WriteFile(path, []byte("[client]\ngas=1000\n"), 0600))
	cfg, err := InitCfg(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), cfg.Client.Gas)

	_, err = InitCfg(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRPCLaddr: "http://127.0.0.1:9901",
		EnvAccount:  "alice.testnet",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "http://127.0.0.1:9901", cfg.Client.RPCLaddr)
	assert.Equal(t, "alice.testnet", cfg.Client.Account)
	assert.Equal(t, DefaultHasher, cfg.Client.Hasher)

	env[EnvHasher] = "blake2b"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "blake2b", cfg.Client.Hasher)
	assert.Equal(t, "blake2b", cfg.Node.Hasher)
}

func TestSampleConfig(t *testing.T) {
	cfg, err := InitCfg(filepath.Join("..", "treasure.toml"))
	require.NoError(t, err)
	assert.Equal(t, "goleveldb", cfg.Node.Driver)
	assert.Equal(t, DefaultGas, cfg.Client.Gas)
	assert.Equal(t, []string{"*"}, cfg.Node.Whitelist)
}
