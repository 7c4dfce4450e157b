// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/trace"
)

const envPrefix = "ZKARB"

var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrMissingRPCAddress = errors.New("missing rpc address")
	ErrInvalidSampleRate = errors.New("trace sample rate must be within [0, 1]")
	ErrZeroProfitDivisor = errors.New("profit divisor must be positive")
)

type Config struct {
	LogLevel string `json:"logLevel"`
	// LogDir receives rotated JSON log files in addition to the console.
	LogDir string `json:"logDir"`

	// DataDir holds the pebble database. The ledger is kept in memory when
	// it is empty.
	DataDir     string `json:"dataDir"`
	GenesisFile string `json:"genesisFile"`
	// ProgramID overrides the identity named in the genesis.
	ProgramID string `json:"programID"`

	RPCAddress     string   `json:"rpcAddress"`
	AllowedOrigins []string `json:"allowedOrigins"`
	SyncWrites     bool     `json:"syncWrites"`

	Trace trace.Config `json:"trace"`

	ProfitDivisor    uint64 `json:"profitDivisor"`
	OptimalLiquidity uint64 `json:"optimalLiquidity"`
	Delay            uint64 `json:"delay"`
}

func NewDefaultConfig() Config {
	return Config{
		LogLevel:         logging.Info.LowerString(),
		RPCAddress:       "127.0.0.1:9650",
		AllowedOrigins:   []string{"*"},
		SyncWrites:       true,
		Trace:            trace.NewDefaultConfig(),
		ProfitDivisor:    oracle.DefaultProfitDivisor,
		OptimalLiquidity: oracle.DefaultOptimalLiquidity,
		Delay:            oracle.DefaultDelay,
	}
}

// New parses a JSON config on top of the defaults.
func New(b []byte) (Config, error) {
	c := NewDefaultConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	return c, c.Validate()
}

// setting pairs a flag and environment name with the path of the same
// field in the JSON form of [Config].
type setting struct {
	key  string
	file string
}

var settings = []setting{
	{key: "log-level", file: "logLevel"},
	{key: "log-dir", file: "logDir"},
	{key: "data-dir", file: "dataDir"},
	{key: "genesis", file: "genesisFile"},
	{key: "program-id", file: "programID"},
	{key: "rpc-address", file: "rpcAddress"},
	{key: "allowed-origins", file: "allowedOrigins"},
	{key: "sync-writes", file: "syncWrites"},
	{key: "trace-enabled", file: "trace.enabled"},
	{key: "trace-sample-rate", file: "trace.sampleRate"},
	{key: "trace-endpoint", file: "trace.endpoint"},
	{key: "profit-divisor", file: "profitDivisor"},
	{key: "optimal-liquidity", file: "optimalLiquidity"},
	{key: "delay", file: "delay"},
}

// Load layers [cfgFile], ZKARB_* environment variables and [flags] on top of
// the defaults. Flags win over the environment, which wins over the file.
//
// The file uses the field names of [Config]; flag names are accepted too.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := NewDefaultConfig()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-dir", d.LogDir)
	v.SetDefault("data-dir", d.DataDir)
	v.SetDefault("genesis", d.GenesisFile)
	v.SetDefault("program-id", d.ProgramID)
	v.SetDefault("rpc-address", d.RPCAddress)
	v.SetDefault("allowed-origins", d.AllowedOrigins)
	v.SetDefault("sync-writes", d.SyncWrites)
	v.SetDefault("trace-enabled", d.Trace.Enabled)
	v.SetDefault("trace-sample-rate", d.Trace.SampleRate)
	v.SetDefault("trace-endpoint", d.Trace.Endpoint)
	v.SetDefault("profit-divisor", d.ProfitDivisor)
	v.SetDefault("optimal-liquidity", d.OptimalLiquidity)
	v.SetDefault("delay", d.Delay)

	if cfgFile != "" {
		f := viper.New()
		f.SetConfigFile(cfgFile)
		if err := f.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// File values replace the defaults so env and flags still win.
		for _, s := range settings {
			switch {
			case f.IsSet(s.file):
				v.SetDefault(s.key, f.Get(s.file))
			case f.IsSet(s.key):
				v.SetDefault(s.key, f.Get(s.key))
			}
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	c := Config{
		LogLevel:         v.GetString("log-level"),
		LogDir:           v.GetString("log-dir"),
		DataDir:          v.GetString("data-dir"),
		GenesisFile:      v.GetString("genesis"),
		ProgramID:        v.GetString("program-id"),
		RPCAddress:       v.GetString("rpc-address"),
		AllowedOrigins:   v.GetStringSlice("allowed-origins"),
		SyncWrites:       v.GetBool("sync-writes"),
		Trace:            d.Trace,
		ProfitDivisor:    v.GetUint64("profit-divisor"),
		OptimalLiquidity: v.GetUint64("optimal-liquidity"),
		Delay:            v.GetUint64("delay"),
	}
	c.Trace.Enabled = v.GetBool("trace-enabled")
	c.Trace.SampleRate = v.GetFloat64("trace-sample-rate")
	c.Trace.Endpoint = v.GetString("trace-endpoint")
	return c, c.Validate()
}

func (c Config) Validate() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if len(c.RPCAddress) == 0 {
		return ErrMissingRPCAddress
	}
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.Trace.SampleRate)
	}
	if c.ProfitDivisor == 0 {
		return ErrZeroProfitDivisor
	}
	if len(c.ProgramID) > 0 {
		if _, err := codec.ParseAddress(c.ProgramID); err != nil {
			return fmt.Errorf("%w: program id", err)
		}
	}
	return nil
}

func (c Config) GetLogLevel() logging.Level {
	// Validated
	l, _ := logging.ToLevel(c.LogLevel)
	return l
}

// GetOracles returns the placeholder collaborators tuned by [c].
func (c Config) GetOracles() oracle.Oracles {
	o := oracle.Defaults()
	o.Estimator = oracle.FixedRateEstimator{Divisor: c.ProfitDivisor}
	o.Optimizer = oracle.StaticOptimizer{Target: c.OptimalLiquidity}
	o.Delay = oracle.StaticDelay{Value: c.Delay}
	return o
}
