// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// GameBoard is a snapshot of a board as listed by the remote service.
// Answers and Players are parallel, in reservation order.
type GameBoard struct {
	ID         uint64    `json:"id"`
	Size       BoardSize `json:"size"`
	Answers    []int     `json:"answers"`
	Players    []string  `json:"players,omitempty"`
	Creator    string    `json:"creator,omitempty"`
	AnswerHash string    `json:"answer_hash,omitempty"`
	BombCount  int       `json:"bomb_count,omitempty"`
	Revealed   bool      `json:"revealed,omitempty"`
}

// SlotCount of the board size
func (b *GameBoard) SlotCount() int {
	return SlotCount(b.Size)
}

// Bombs is the number of leading solution bytes that are bomb slots
func (b *GameBoard) Bombs() int {
	if b.BombCount > 0 {
		return b.BombCount
	}
	return MinBombs(b.SlotCount())
}

// Taken reports whether slot already has a reservation
func (b *GameBoard) Taken(slot int) bool {
	for _, a := range b.Answers {
		if a == slot {
			return true
		}
	}
	return false
}

// GameState is Open, Closed or Revealed
type GameState int32

func (s GameState) String() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateClosed:
		return "Closed"
	case StateRevealed:
		return "Revealed"
	}
	return fmt.Sprintf("GameState(%d)", int32(s))
}

// MarshalJSON as label
func (s GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON from label
func (s *GameState) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	for _, st := range []GameState{StateOpen, StateClosed, StateRevealed} {
		if st.String() == label {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", label)
}

// Classify derives the state of a fetched board. A board is closed once the
// number of reservations reaches half its slots; the remote never admits more.
func Classify(b *GameBoard) GameState {
	if b.Revealed {
		return StateRevealed
	}
	if len(b.Answers) >= b.SlotCount()/2 {
		return StateClosed
	}
	return StateOpen
}

// RevealClaim is what the creator submits to end a board.
// Commitment is optional, when present the claim is checked against it locally.
type RevealClaim struct {
	ID         uint64
	Solution   []byte
	Commitment []byte
}

// SlotResult is the outcome of one reservation once the solution is known
type SlotResult struct {
	Slot   int    `json:"slot"`
	Player string `json:"player,omitempty"`
	Bomb   bool   `json:"bomb"`
}

//NewGameArgs new_game
type NewGameArgs struct {
	Size         BoardSize `json:"size"`
	SolutionHash string    `json:"solution_hash"`
	BombCount    int       `json:"bomb_count,omitempty"`
}

//PlayArgs play
type PlayArgs struct {
	ID     uint64 `json:"id"`
	Choice int    `json:"choice"`
}

//RevealArgs reveal, the solution travels as numbers
type RevealArgs struct {
	ID       uint64 `json:"id"`
	Solution []int  `json:"solution"`
}

// NewRevealArgs converts a byte solution to its wire form
func NewRevealArgs(id uint64, solution []byte) *RevealArgs {
	nums := make([]int, len(solution))
	for i, b := range solution {
		nums[i] = int(b)
	}
	return &RevealArgs{ID: id, Solution: nums}
}

// SolutionBytes validates every number and converts back to bytes
func (r *RevealArgs) SolutionBytes() ([]byte, error) {
	out := make([]byte, len(r.Solution))
	for i, n := range r.Solution {
		if n < 0 || n > MaxSlot {
			return nil, errors.Wrapf(ErrInvalidSolutionByte, "solution[%d]=%d", i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

//ViewCall params of a read only call
type ViewCall struct {
	ContractID string          `json:"contract_id"`
	Args       json.RawMessage `json:"args"`
}

//FunctionCall params of a state changing call. Deposit is a decimal yocto amount.
type FunctionCall struct {
	ContractID string          `json:"contract_id"`
	SignerID   string          `json:"signer_id"`
	Gas        uint64          `json:"gas"`
	Deposit    string          `json:"deposit"`
	Args       json.RawMessage `json:"args"`
}

//Payout transfer made by the contract
type Payout struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

//TransactionOutcome result of a state changing call
type TransactionOutcome struct {
	TxHash   string       `json:"tx_hash"`
	Signer   string       `json:"signer"`
	Method   string       `json:"method"`
	GameID   uint64       `json:"game_id,omitempty"`
	GasBurnt uint64       `json:"gas_burnt"`
	Deposit  string       `json:"deposit"`
	Logs     []string     `json:"logs,omitempty"`
	Payouts  []Payout     `json:"payouts,omitempty"`
	Results  []SlotResult `json:"results,omitempty"`
}
