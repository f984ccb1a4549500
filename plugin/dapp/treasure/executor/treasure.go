// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor is a local reference ledger for the treasure board
// contract, used by the development node and end to end tests.
package executor

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"sync"

	"github.com/33cn/treasureboard/common/crypto"
	dbm "github.com/33cn/treasureboard/common/db"
	log "github.com/33cn/treasureboard/common/log"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs.treasure")

var (
	boardPrefix = []byte("mavl-treasure-board-")
	nextIDKey   = []byte("mavl-treasure-next")
)

func calcBoardKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", boardPrefix, id))
}

// board is the stored record, the listing exposes only GameBoard
type board struct {
	ttypes.GameBoard
	Deposit string   `json:"deposit"`
	Stakes  []string `json:"stakes"`
}

// Ledger owns every board. All state changes are serialized.
type Ledger struct {
	mu     sync.Mutex
	db     dbm.DB
	cache  *lru.Cache
	hasher crypto.Hasher
	unit   *big.Int
	nonce  uint64
}

// NewLedger over kv. unit is the stake per slot in yocto.
func NewLedger(kv dbm.DB, hasher crypto.Hasher, unit *big.Int, cacheSize int) (*Ledger, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: kv, cache: cache, hasher: hasher, unit: new(big.Int).Set(unit)}, nil
}

// Games lists every board in id order
func (l *Ledger) Games() ([]ttypes.GameBoard, error) {
	values, err := l.db.PrefixScan(boardPrefix)
	if err != nil {
		return nil, err
	}
	boards := make([]ttypes.GameBoard, 0, len(values))
	for _, v := range values {
		var b board
		if err := json.Unmarshal(v, &b); err != nil {
			return nil, errors.Wrap(err, "Games decode")
		}
		boards = append(boards, b.GameBoard)
	}
	return boards, nil
}

func (l *Ledger) getBoard(id uint64) (*board, error) {
	if v, ok := l.cache.Get(id); ok {
		b := v.(board)
		c := copyBoard(&b)
		return &c, nil
	}
	data, err := l.db.Get(calcBoardKey(id))
	if err == dbm.ErrNotFoundInDb {
		return nil, ErrNoSuchGame
	}
	if err != nil {
		return nil, err
	}
	var b board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "getBoard %d", id)
	}
	l.cache.Add(id, b)
	return &b, nil
}

func (l *Ledger) saveBoard(batch dbm.Batch, b *board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	batch.Set(calcBoardKey(b.ID), data)
	return nil
}

func (l *Ledger) nextID() (uint64, error) {
	data, err := l.db.Get(nextIDKey)
	if err == dbm.ErrNotFoundInDb {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(string(data), 10, 64)
}

// commit writes the batch and refreshes the cache only when the write succeeded
func (l *Ledger) commit(batch dbm.Batch, b *board) error {
	if err := batch.Write(); err != nil {
		l.cache.Remove(b.ID)
		return err
	}
	l.cache.Add(b.ID, copyBoard(b))
	return nil
}

func copyBoard(b *board) board {
	c := *b
	c.Answers = append([]int(nil), b.Answers...)
	c.Players = append([]string(nil), b.Players...)
	c.Stakes = append([]string(nil), b.Stakes...)
	return c
}
