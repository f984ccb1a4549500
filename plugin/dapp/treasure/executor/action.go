// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"encoding/binary"
	"errors"
	"math/big"
	"strconv"

	"github.com/33cn/treasureboard/common"
	"github.com/33cn/treasureboard/plugin/dapp/treasure/commitment"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
)

// kindError is a contract message that also matches a local error kind
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

// contract errors, the message is what callers see
var (
	ErrNoSuchGame           = newKindError("No such a game exists", ttypes.ErrGameNotFound)
	ErrLowCreateDeposit     = errors.New("Attached deposit is not sufficient to create a board of this size")
	ErrLowPlayDeposit       = errors.New("Attached deposit is insufficient")
	ErrSlotTaken            = errors.New("That slot has already been taken")
	ErrSlotNotExist         = newKindError("That slot does not exist on this board", ttypes.ErrOutOfRangeSlot)
	ErrGameClosed           = errors.New("The game is closed")
	ErrAlreadyPlayed        = errors.New("You have already reserved a slot on this game")
	ErrNotCreator           = errors.New("Only the creator can reveal the solution")
	ErrGameNotClosed        = errors.New("The game is not closed yet")
	ErrAlreadyRevealed      = errors.New("The game has already been revealed")
	ErrSolutionMismatch     = errors.New("Solution does not match the committed hash")
	ErrInvalidSolution      = errors.New("Invalid solution")
	ErrInvalidSolutionHash  = errors.New("Invalid solution hash")
	ErrInvalidBombCount     = errors.New("Invalid bomb count")
	ErrPrepaidGasExceeded   = errors.New("Exceeded the prepaid gas")
	ErrMissingSigner        = errors.New("Missing signer")
	ErrInvalidDepositAmount = errors.New("Invalid deposit amount")
)

// GasPerCall is burnt by every state changing call
const GasPerCall uint64 = 2428000000000

// Call is the envelope of one state changing call
type Call struct {
	Method  string
	Signer  string
	Gas     uint64
	Deposit *big.Int
	Args    []byte
}

// NewCall checks the envelope fields that do not depend on the method
func NewCall(method string, fc *ttypes.FunctionCall) (*Call, error) {
	if fc.SignerID == "" {
		return nil, ErrMissingSigner
	}
	deposit := new(big.Int)
	if fc.Deposit != "" {
		if _, ok := deposit.SetString(fc.Deposit, 10); !ok || deposit.Sign() < 0 {
			return nil, ErrInvalidDepositAmount
		}
	}
	if fc.Gas < GasPerCall {
		return nil, ErrPrepaidGasExceeded
	}
	return &Call{Method: method, Signer: fc.SignerID, Gas: fc.Gas, Deposit: deposit, Args: fc.Args}, nil
}

func (l *Ledger) outcome(call *Call, id uint64) *ttypes.TransactionOutcome {
	l.nonce++
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], l.nonce)
	seed := append([]byte(call.Method+"/"+call.Signer+"/"), call.Args...)
	seed = append(seed, n[:]...)
	return &ttypes.TransactionOutcome{
		TxHash:   common.ToBase58(common.Sha256(seed)),
		Signer:   call.Signer,
		Method:   call.Method,
		GameID:   id,
		GasBurnt: GasPerCall,
		Deposit:  call.Deposit.String(),
	}
}

// NewGame stores a board with its answer hash and keeps the deposit as prize
func (l *Ledger) NewGame(call *Call, args *ttypes.NewGameArgs) (*ttypes.TransactionOutcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slotCount := ttypes.SlotCount(args.Size)
	if slotCount == 0 {
		return nil, ttypes.ErrInvalidSize
	}
	if call.Deposit.Cmp(ttypes.StakeAmount(slotCount, l.unit)) < 0 {
		return nil, ErrLowCreateDeposit
	}
	hash, err := commitment.DecodeDigest(l.hasher, args.SolutionHash)
	if err != nil {
		return nil, ErrInvalidSolutionHash
	}
	bombs := args.BombCount
	if bombs == 0 {
		bombs = ttypes.MinBombs(slotCount)
	}
	if bombs < ttypes.MinBombs(slotCount) || bombs > slotCount {
		return nil, ErrInvalidBombCount
	}

	id, err := l.nextID()
	if err != nil {
		return nil, err
	}
	b := &board{
		GameBoard: ttypes.GameBoard{
			ID:         id,
			Size:       args.Size,
			Answers:    []int{},
			Creator:    call.Signer,
			AnswerHash: common.Bytes2Hex(hash),
			BombCount:  bombs,
		},
		Deposit: call.Deposit.String(),
	}
	batch := l.db.NewBatch(true)
	if err := l.saveBoard(batch, b); err != nil {
		return nil, err
	}
	batch.Set(nextIDKey, []byte(strconv.FormatUint(id+1, 10)))
	if err := l.commit(batch, b); err != nil {
		return nil, err
	}
	elog.Info("NewGame", "id", id, "creator", call.Signer, "size", args.Size, "deposit", ttypes.FormatStake(call.Deposit))

	out := l.outcome(call, id)
	out.Logs = []string{"created board " + strconv.FormatUint(id, 10)}
	return out, nil
}

// Play reserves one slot for the signer
func (l *Ledger) Play(call *Call, args *ttypes.PlayArgs) (*ttypes.TransactionOutcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.getBoard(args.ID)
	if err != nil {
		return nil, err
	}
	if ttypes.Classify(&b.GameBoard) != ttypes.StateOpen {
		return nil, ErrGameClosed
	}
	if ttypes.CheckSlot(args.Choice, b.SlotCount()) != nil {
		return nil, ErrSlotNotExist
	}
	if b.Taken(args.Choice) {
		return nil, ErrSlotTaken
	}
	for _, p := range b.Players {
		if p == call.Signer {
			return nil, ErrAlreadyPlayed
		}
	}
	if call.Deposit.Cmp(l.unit) < 0 {
		return nil, ErrLowPlayDeposit
	}

	b.Answers = append(b.Answers, args.Choice)
	b.Players = append(b.Players, call.Signer)
	b.Stakes = append(b.Stakes, call.Deposit.String())
	batch := l.db.NewBatch(true)
	if err := l.saveBoard(batch, b); err != nil {
		return nil, err
	}
	if err := l.commit(batch, b); err != nil {
		return nil, err
	}
	elog.Info("Play", "id", b.ID, "player", call.Signer, "slot", args.Choice, "state", ttypes.Classify(&b.GameBoard))
	return l.outcome(call, b.ID), nil
}

// Reveal checks the solution against the answer hash and pays out: every
// player on a safe slot gets two stake units, the creator takes the rest.
func (l *Ledger) Reveal(call *Call, args *ttypes.RevealArgs) (*ttypes.TransactionOutcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.getBoard(args.ID)
	if err != nil {
		return nil, err
	}
	if b.Creator != call.Signer {
		return nil, ErrNotCreator
	}
	if b.Revealed {
		return nil, ErrAlreadyRevealed
	}
	if ttypes.Classify(&b.GameBoard) != ttypes.StateClosed {
		return nil, ErrGameNotClosed
	}
	solution, err := args.SolutionBytes()
	if err != nil || len(solution) == 0 {
		return nil, ErrInvalidSolution
	}
	verdict, err := commitment.VerifyRevealHex(l.hasher, solution, b.AnswerHash)
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, ErrSolutionMismatch
	}
	results, err := commitment.Settle(&b.GameBoard, solution)
	if err != nil {
		return nil, ErrInvalidSolution
	}

	pot, ok := new(big.Int).SetString(b.Deposit, 10)
	if !ok {
		return nil, ErrInvalidDepositAmount
	}
	for _, s := range b.Stakes {
		stake, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, ErrInvalidDepositAmount
		}
		pot.Add(pot, stake)
	}
	prize := new(big.Int).Mul(l.unit, big.NewInt(2))
	var payouts []ttypes.Payout
	for _, r := range results {
		if r.Bomb {
			continue
		}
		payouts = append(payouts, ttypes.Payout{Account: r.Player, Amount: prize.String()})
		pot.Sub(pot, prize)
	}
	payouts = append(payouts, ttypes.Payout{Account: b.Creator, Amount: pot.String()})

	b.Revealed = true
	batch := l.db.NewBatch(true)
	if err := l.saveBoard(batch, b); err != nil {
		return nil, err
	}
	if err := l.commit(batch, b); err != nil {
		return nil, err
	}
	elog.Info("Reveal", "id", b.ID, "winners", len(payouts)-1)

	out := l.outcome(call, b.ID)
	out.Payouts = payouts
	out.Results = results
	return out, nil
}
