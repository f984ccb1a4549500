// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client turns board operations into calls on the remote contract.
// Every local check runs before the call, so a request that fails locally
// never moves a stake. Remote failures are returned as they came, no retry.
package client

import (
	"encoding/json"
	"math/big"

	"github.com/33cn/treasureboard/common"
	"github.com/33cn/treasureboard/common/crypto"
	log "github.com/33cn/treasureboard/common/log"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/commitment"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/33cn/treasureboard/rpc/jsonclient"
	"github.com/33cn/treasureboard/types"
	"github.com/pkg/errors"
)

var flog = log.New("module", "treasure.client")

// CustodyWarning is shown with every new board
const CustodyWarning = "keep the committed bytes: they are stored nowhere else and without them the board can never be revealed"

// Caller is the remote service
type Caller interface {
	Call(method string, params, result interface{}) error
}

// Session carries the identity that signs calls
type Session struct {
	AccountID string
}

func (s Session) check() error {
	if s.AccountID == "" {
		return ttypes.ErrNoAccount
	}
	return nil
}

// Config network and stake parameters
type Config struct {
	ContractID string
	Gas        uint64
	StakeUnit  *big.Int
	Policy     ttypes.TokenPolicy
}

// ConfigFromClient builds Config from the [client] section
func ConfigFromClient(cfg *types.Client, policy ttypes.TokenPolicy) (*Config, error) {
	unit, err := cfg.StakeUnitInt()
	if err != nil {
		return nil, err
	}
	return &Config{ContractID: cfg.ContractID, Gas: cfg.Gas, StakeUnit: unit, Policy: policy}, nil
}

// Client facade over the four contract methods
type Client struct {
	rpc    Caller
	hasher crypto.Hasher
	cfg    Config
}

// New client
func New(rpc Caller, hasher crypto.Hasher, cfg *Config) *Client {
	return &Client{rpc: rpc, hasher: hasher, cfg: *cfg}
}

// Hasher used for commitments
func (c *Client) Hasher() crypto.Hasher {
	return c.hasher
}

// BoardView is a listed board with its derived state
type BoardView struct {
	ttypes.GameBoard
	State ttypes.GameState `json:"state"`
}

// CreateResult of CreateGame. Commitment.CommittedBytes must be handed to the creator.
type CreateResult struct {
	Outcome    *ttypes.TransactionOutcome `json:"outcome"`
	Commitment *commitment.Commitment     `json:"commitment"`
	Stake      string                     `json:"stake"`
	Warnings   []string                   `json:"warnings,omitempty"`
}

// RevealResult of RevealSolution. Verdict is nil when no commitment was given.
type RevealResult struct {
	Outcome *ttypes.TransactionOutcome `json:"outcome"`
	Digest  string                     `json:"digest"`
	Verdict *commitment.Verdict        `json:"verdict,omitempty"`
}

// ListGames fetches every board, no stake
func (c *Client) ListGames() ([]*BoardView, error) {
	params := &ttypes.ViewCall{ContractID: c.cfg.ContractID, Args: json.RawMessage("{}")}
	var boards []ttypes.GameBoard
	if err := c.rpc.Call(ttypes.FuncNameGames, params, &boards); err != nil {
		return nil, remoteError(ttypes.FuncNameGames, err)
	}
	views := make([]*BoardView, 0, len(boards))
	for i := range boards {
		views = append(views, &BoardView{GameBoard: boards[i], State: ttypes.Classify(&boards[i])})
	}
	return views, nil
}

// CreateGame commits to bombs ++ salt and stakes one unit per slot
func (c *Client) CreateGame(s Session, sizeLabel string, bombs []int, salt []byte) (*CreateResult, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	size, warnings, err := ttypes.SizeFromLabelWithPolicy(sizeLabel, c.cfg.Policy)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		flog.Warn("CreateGame", "warning", w)
	}
	slotCount := ttypes.SlotCount(size)
	commit, err := commitment.BuildCommitmentWithPolicy(c.hasher, bombs, slotCount, salt, c.cfg.Policy)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, commit.Warnings...)

	stake := ttypes.StakeAmount(slotCount, c.cfg.StakeUnit)
	args := &ttypes.NewGameArgs{Size: size, SolutionHash: commit.DigestHex(), BombCount: commit.BombCount}
	outcome, err := c.change(s, ttypes.FuncNameNewGame, args, stake)
	if err != nil {
		return nil, err
	}
	flog.Info("CreateGame", "signer", s.AccountID, "size", size, "digest", args.SolutionHash, "tx", outcome.TxHash)
	return &CreateResult{
		Outcome:    outcome,
		Commitment: commit,
		Stake:      ttypes.FormatStake(stake),
		Warnings:   append(warnings, CustodyWarning),
	}, nil
}

// ReserveSlot stakes one unit on slot. Range and double booking are decided remotely.
func (c *Client) ReserveSlot(s Session, id uint64, slot int) (*ttypes.TransactionOutcome, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := ttypes.CheckSlot(slot, ttypes.MaxSlot+1); err != nil {
		return nil, err
	}
	args := &ttypes.PlayArgs{ID: id, Choice: slot}
	outcome, err := c.change(s, ttypes.FuncNamePlay, args, c.cfg.StakeUnit)
	if err != nil {
		return nil, err
	}
	flog.Info("ReserveSlot", "signer", s.AccountID, "id", id, "slot", slot, "tx", outcome.TxHash)
	return outcome, nil
}

// RevealSolution refuses solutions with values outside [0,255]. With an
// expected commitment it checks the claim first, a mismatch is logged and
// the claim is sent anyway since the contract decides.
func (c *Client) RevealSolution(s Session, id uint64, solution []int, expected []byte) (*RevealResult, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	sol, err := commitment.SolutionFromInts(solution)
	if err != nil {
		return nil, err
	}
	claim := &ttypes.RevealClaim{ID: id, Solution: sol, Commitment: expected}
	res := &RevealResult{}
	if claim.Commitment != nil {
		res.Verdict = commitment.VerifyReveal(c.hasher, claim.Solution, claim.Commitment)
		res.Digest = common.Bytes2Hex(res.Verdict.Digest)
		if !res.Verdict.Valid {
			flog.Warn("RevealSolution solution does not match commitment", "id", id, "digest", res.Digest)
		}
	} else {
		res.Digest = common.Bytes2Hex(c.hasher.Sum(claim.Solution))
	}

	res.Outcome, err = c.change(s, ttypes.FuncNameReveal, ttypes.NewRevealArgs(claim.ID, claim.Solution), new(big.Int))
	if err != nil {
		return nil, err
	}
	flog.Info("RevealSolution", "signer", s.AccountID, "id", id, "tx", res.Outcome.TxHash)
	return res, nil
}

func (c *Client) change(s Session, method string, args interface{}, deposit *big.Int) (*ttypes.TransactionOutcome, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, errors.Wrapf(err, "%s args", method)
	}
	params := &ttypes.FunctionCall{
		ContractID: c.cfg.ContractID,
		SignerID:   s.AccountID,
		Gas:        c.cfg.Gas,
		Deposit:    deposit.String(),
		Args:       raw,
	}
	var outcome ttypes.TransactionOutcome
	if err := c.rpc.Call(method, params, &outcome); err != nil {
		return nil, remoteError(method, err)
	}
	return &outcome, nil
}

// remoteError keeps the message as the remote sent it
func remoteError(method string, err error) error {
	flog.Error("remote call failed", "method", method, "err", err)
	var rerr *jsonclient.RPCError
	if errors.As(err, &rerr) {
		return &ttypes.RemoteError{Method: method, Code: rerr.Code, Message: rerr.Message}
	}
	return &ttypes.RemoteError{Method: method, Message: err.Error()}
}
