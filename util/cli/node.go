// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 启动客户端命令行以及开发节点
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/33cn/treasureboard/common/crypto"
	dbm "github.com/33cn/treasureboard/common/db"
	clog "github.com/33cn/treasureboard/common/log"
	"github.com/33cn/treasureboard/metrics"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/executor"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/rpc"
	"github.com/33cn/treasureboard/types"
	"github.com/joho/godotenv"
)

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of the node")
)

var log = clog.New("module", "node")

//RunNode : run the development node until SIGINT or SIGTERM
func RunNode(name string) {
	flag.Parse()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	explicit := *configPath != ""
	if !explicit {
		if name == "" {
			name = types.DefaultTitle
		}
		*configPath = name + ".toml"
	}
	cfg, err := loadNodeConfig(*configPath, explicit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *datadir != "" {
		cfg.Node.DbPath = *datadir
	}
	clog.SetFileLog(&cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := runNode(ctx, cfg); err != nil {
		log.Error("RunNode", "err", err)
		os.Exit(1)
	}
}

// a missing config file means defaults unless it was given with -f
func loadNodeConfig(path string, explicit bool) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if _, err := os.Stat(path); explicit || err == nil {
		if cfg, err = types.InitCfg(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

func runNode(ctx context.Context, cfg *types.Config) error {
	hasher, err := crypto.GetHasher(cfg.Node.Hasher)
	if err != nil {
		return err
	}
	unit, err := types.ParseStakeUnit(cfg.Node.StakeUnit)
	if err != nil {
		return err
	}
	kv, err := dbm.NewDB(types.DefaultTitle, cfg.Node.Driver, cfg.Node.DbPath, int(cfg.Node.DbCache))
	if err != nil {
		return err
	}
	defer kv.Close()
	ledger, err := executor.NewLedger(kv, hasher, unit, cfg.Node.CacheSize)
	if err != nil {
		return err
	}
	metrics.StartMetrics(ctx, &cfg.Metrics)
	log.Info("loading treasure node", "title", cfg.Title, "driver", cfg.Node.Driver, "hasher", hasher.Name(), "contract", cfg.Node.ContractID)
	return rpc.NewServer(cfg.Node, ledger).Run(ctx)
}
