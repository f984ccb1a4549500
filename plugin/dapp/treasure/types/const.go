// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// board size
const (
	BoardSmall BoardSize = iota + 1
	BoardMedium
	BoardBig
)

// game state, derived from a fetched board
const (
	StateOpen GameState = iota + 1
	StateClosed
	StateRevealed
)

// contract methods
const (
	FuncNameGames   = "games"
	FuncNameNewGame = "new_game"
	FuncNamePlay    = "play"
	FuncNameReveal  = "reveal"
)

// token policy flags, they combine with |
const (
	// PolicyStrict rejects every malformed token
	PolicyStrict        TokenPolicy = 0
	// PolicyIndexFallback substitutes the token position and reports a warning
	PolicyIndexFallback TokenPolicy = 1 << 0
	// PolicyRequireSalt fails a commitment with an empty salt
	PolicyRequireSalt   TokenPolicy = 1 << 1
)

// MaxSlot is the largest index a single solution byte can carry
const MaxSlot = 255
