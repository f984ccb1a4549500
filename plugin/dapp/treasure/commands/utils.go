// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/33cn/treasureboard/common/crypto"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/client"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/commitment"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/33cn/treasureboard/rpc/jsonclient"
	"github.com/33cn/treasureboard/types"
	"github.com/spf13/cobra"
)

// AddGlobalFlags are the persistent flags every treasure command reads
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("rpc_laddr", types.DefaultRPCLaddr, "http url")
	cmd.PersistentFlags().String("conf", "", "config file, defaults apply when empty")
	cmd.PersistentFlags().String("account", "", "account id that signs calls")
	cmd.PersistentFlags().Bool("lenient", false, "replace malformed tokens with their position and warn")
	cmd.PersistentFlags().Bool("require_salt", false, "refuse to commit a board without a salt")
}

// runEnv is the resolved configuration of one command run
type runEnv struct {
	cfg    *types.Config
	policy ttypes.TokenPolicy
}

// loadEnv applies config file, environment and flags in that order
func loadEnv(cmd *cobra.Command) (*runEnv, error) {
	cfg := types.DefaultConfig()
	if path, _ := cmd.Flags().GetString("conf"); path != "" {
		var err error
		cfg, err = types.InitCfg(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if cmd.Flags().Changed("rpc_laddr") {
		cfg.Client.RPCLaddr, _ = cmd.Flags().GetString("rpc_laddr")
	}
	if account, _ := cmd.Flags().GetString("account"); account != "" {
		cfg.Client.Account = account
	}
	policy := ttypes.PolicyStrict
	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		policy |= ttypes.PolicyIndexFallback
	}
	if requireSalt, _ := cmd.Flags().GetBool("require_salt"); requireSalt {
		policy |= ttypes.PolicyRequireSalt
	}
	return &runEnv{cfg: cfg, policy: policy}, nil
}

func (e *runEnv) hasher() (crypto.Hasher, error) {
	return crypto.GetHasher(e.cfg.Client.Hasher)
}

func (e *runEnv) newClient() (*client.Client, error) {
	rpc, err := jsonclient.NewJSONClientWithTimeout(e.cfg.Client.RPCLaddr, e.cfg.Client.Timeout())
	if err != nil {
		return nil, err
	}
	h, err := e.hasher()
	if err != nil {
		return nil, err
	}
	ccfg, err := client.ConfigFromClient(&e.cfg.Client, e.policy)
	if err != nil {
		return nil, err
	}
	return client.New(rpc, h, ccfg), nil
}

func (e *runEnv) session() client.Session {
	return client.Session{AccountID: e.cfg.Client.Account}
}

// CommitmentResult is a commitment in the form it was typed in
type CommitmentResult struct {
	Committed string   `json:"committed"`
	Digest    string   `json:"digest"`
	BombCount int      `json:"bomb_count"`
	Warnings  []string `json:"warnings,omitempty"`
}

func commitmentResult(c *commitment.Commitment) *CommitmentResult {
	return &CommitmentResult{
		Committed: ttypes.FormatSolution(c.CommittedBytes),
		Digest:    c.DigestHex(),
		BombCount: c.BombCount,
		Warnings:  c.Warnings,
	}
}

// CreateResult of game create
type CreateResult struct {
	TxHash     string            `json:"tx_hash"`
	GameID     uint64            `json:"game_id"`
	Stake      string            `json:"stake"`
	Commitment *CommitmentResult `json:"commitment"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// RevealResult of game reveal
type RevealResult struct {
	TxHash  string              `json:"tx_hash"`
	Digest  string              `json:"digest"`
	Matches *bool               `json:"matches,omitempty"`
	Results []ttypes.SlotResult `json:"results,omitempty"`
	Payouts []ttypes.Payout     `json:"payouts,omitempty"`
}

// VerifyResult of game verify
type VerifyResult struct {
	Valid  bool   `json:"valid"`
	Digest string `json:"digest"`
}

func printJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, "warning:", msg)
	}
}
