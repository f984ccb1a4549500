// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 配置结构以及加载函数
package types

import (
	"io/ioutil"
	"math/big"
	"time"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

//defaults
const (
	DefaultTitle      = "treasure"
	DefaultRPCLaddr   = "http://localhost:8801"
	DefaultBindAddr   = "localhost:8801"
	DefaultContractID = "dev-1654580401237-76489858696902"
	// DefaultGas is the compute budget attached to every state changing call
	DefaultGas uint64 = 40 * 1e12
	// DefaultStakeUnit is one NEAR expressed in yocto
	DefaultStakeUnit = "1000000000000000000000000"
	DefaultHasher    = "sha256"
	DefaultDriver    = "memdb"
)

//Config 配置
type Config struct {
	Title   string  `toml:"Title"`
	Log     Log     `toml:"log"`
	Client  Client  `toml:"client"`
	Node    Node    `toml:"node"`
	Metrics Metrics `toml:"metrics"`
}

//Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge         uint32 `toml:"maxAge"`
	LocalTime      bool   `toml:"localTime"`
	Compress       bool   `toml:"compress"`
	CallerFile     bool   `toml:"callerFile"`
	CallerFunction bool   `toml:"callerFunction"`
}

//Client 客户端配置
type Client struct {
	RPCLaddr       string `toml:"rpcLaddr"`
	ContractID     string `toml:"contractID"`
	Gas            uint64 `toml:"gas"`
	StakeUnit      string `toml:"stakeUnit"`
	Hasher         string `toml:"hasher"`
	TimeoutSeconds int64  `toml:"timeoutSeconds"`
	Account        string `toml:"account"`
}

//Node 本地开发节点配置
type Node struct {
	JrpcBindAddr string   `toml:"jrpcBindAddr"`
	Whitelist    []string `toml:"whitelist"`
	ContractID   string   `toml:"contractID"`
	Driver       string   `toml:"driver"`
	DbPath       string   `toml:"dbPath"`
	DbCache      int32    `toml:"dbCache"`
	CacheSize    int      `toml:"cacheSize"`
	RateLimit    float64  `toml:"rateLimit"`
	RateBurst    int64    `toml:"rateBurst"`
	StakeUnit    string   `toml:"stakeUnit"`
	Hasher       string   `toml:"hasher"`
}

//Metrics 统计配置
type Metrics struct {
	EnableMetrics      bool  `toml:"enableMetrics"`
	LogIntervalSeconds int64 `toml:"logIntervalSeconds"`
}

//DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Title: DefaultTitle,
		Log: Log{
			Loglevel:        "info",
			LogConsoleLevel: "error",
			LogFile:         "logs/treasure.log",
			MaxFileSize:     300,
			MaxBackups:      100,
			MaxAge:          28,
			LocalTime:       true,
			Compress:        true,
		},
		Client: Client{
			RPCLaddr:       DefaultRPCLaddr,
			ContractID:     DefaultContractID,
			Gas:            DefaultGas,
			StakeUnit:      DefaultStakeUnit,
			Hasher:         DefaultHasher,
			TimeoutSeconds: 30,
		},
		Node: Node{
			JrpcBindAddr: DefaultBindAddr,
			Whitelist:    []string{"*"},
			ContractID:   DefaultContractID,
			Driver:       DefaultDriver,
			DbPath:       "datadir",
			DbCache:      64,
			CacheSize:    1024,
			RateLimit:    20,
			RateBurst:    40,
			StakeUnit:    DefaultStakeUnit,
			Hasher:       DefaultHasher,
		},
		Metrics: Metrics{
			LogIntervalSeconds: 60,
		},
	}
}

// InitCfg 从文件初始化配置
func InitCfg(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "InitCfg read %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString decodes over DefaultConfig, so absent keys keep their defaults.
// toml allocates fresh pointees, so sections are value fields.
func InitCfgString(cfgstring string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := tml.Decode(cfgstring, cfg); err != nil {
		return nil, errors.Wrap(err, "InitCfgString decode")
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Check 检查配置项
func (c *Config) Check() error {
	if c.Client.Gas == 0 {
		return errors.New("config: client.gas must be positive")
	}
	if _, err := c.Client.StakeUnitInt(); err != nil {
		return err
	}
	if _, err := ParseStakeUnit(c.Node.StakeUnit); err != nil {
		return errors.Wrap(err, "node")
	}
	if c.Client.TimeoutSeconds < 0 {
		return errors.New("config: client.timeoutSeconds must not be negative")
	}
	return nil
}

//StakeUnitInt 每个格子需要质押的最小单位数量
func (c *Client) StakeUnitInt() (*big.Int, error) {
	return ParseStakeUnit(c.StakeUnit)
}

//Timeout http timeout, zero means none
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

//ParseStakeUnit decimal integer, strictly positive
func ParseStakeUnit(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() <= 0 {
		return nil, errors.Errorf("config: invalid stake unit %q", s)
	}
	return v, nil
}

// environment overrides
const (
	EnvRPCLaddr = "TREASURE_RPC_LADDR"
	EnvAccount  = "TREASURE_ACCOUNT"
	EnvHasher   = "TREASURE_HASHER"
)

//ApplyEnv 环境变量覆盖客户端配置, 空值忽略
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRPCLaddr); v != "" {
		c.Client.RPCLaddr = v
	}
	if v := getenv(EnvAccount); v != "" {
		c.Client.Account = v
	}
	if v := getenv(EnvHasher); v != "" {
		c.Client.Hasher = v
		c.Node.Hasher = v
	}
}
