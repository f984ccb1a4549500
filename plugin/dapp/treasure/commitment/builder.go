// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commitment builds and checks the hash a board creator commits to.
//
// The committed byte sequence is the bomb slot indices in the order the
// creator gave them followed by the raw salt bytes. The digest is taken over
// exactly that sequence, so the creator must keep it to reveal the board later.
package commitment

import (
	"fmt"

	"github.com/33cn/treasureboard/common"
	"github.com/33cn/treasureboard/common/crypto"
	log "github.com/33cn/treasureboard/common/log"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/pkg/errors"
)

var clog = log.New("module", "treasure.commitment")

// Commitment is the result of building a board commitment.
// CommittedBytes is never stored by this package.
type Commitment struct {
	CommittedBytes []byte   `json:"committed_bytes"`
	Digest         []byte   `json:"digest"`
	BombCount      int      `json:"bomb_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// DigestHex is the form sent as solution_hash
func (c *Commitment) DigestHex() string {
	return common.Bytes2Hex(c.Digest)
}

// BuildCommitment validates bombs against the board and hashes bombs ++ salt
func BuildCommitment(h crypto.Hasher, bombs []int, slotCount int, salt []byte) (*Commitment, error) {
	return BuildCommitmentWithPolicy(h, bombs, slotCount, salt, ttypes.PolicyStrict)
}

// BuildCommitmentWithPolicy is BuildCommitment where PolicyIndexFallback
// replaces an out of range bomb with its own position and warns about it,
// and PolicyRequireSalt turns the empty salt warning into ErrEmptySalt.
func BuildCommitmentWithPolicy(h crypto.Hasher, bombs []int, slotCount int, salt []byte, policy ttypes.TokenPolicy) (*Commitment, error) {
	if slotCount <= 0 || slotCount > ttypes.MaxSlot+1 {
		return nil, errors.Wrapf(ttypes.ErrInvalidSize, "slot count %d", slotCount)
	}
	var warnings []string
	committed := make([]byte, 0, len(bombs)+len(salt))
	seen := make(map[int]bool, len(bombs))
	for i, bomb := range bombs {
		if err := ttypes.CheckSlot(bomb, slotCount); err != nil {
			if !policy.Has(ttypes.PolicyIndexFallback) || ttypes.CheckSlot(i, slotCount) != nil {
				return nil, errors.Wrapf(err, "bomb %d", i)
			}
			msg := fmt.Sprintf("bomb %d: slot %d out of range, defaulting to index %d", i, bomb, i)
			clog.Warn("BuildCommitment", "warning", msg)
			warnings = append(warnings, msg)
			bomb = i
		}
		if seen[bomb] {
			return nil, errors.Wrapf(ttypes.ErrDuplicateSlot, "bomb %d: slot %d", i, bomb)
		}
		seen[bomb] = true
		committed = append(committed, byte(bomb))
	}
	if need := ttypes.MinBombs(slotCount); len(bombs) < need {
		return nil, errors.Wrapf(ttypes.ErrInsufficientBombs, "%d bombs, need at least %d", len(bombs), need)
	}
	if len(salt) == 0 {
		if policy.Has(ttypes.PolicyRequireSalt) {
			return nil, ttypes.ErrEmptySalt
		}
		msg := "empty salt, the commitment can be brute forced"
		clog.Warn("BuildCommitment", "warning", msg)
		warnings = append(warnings, msg)
	}
	committed = append(committed, salt...)

	return &Commitment{
		CommittedBytes: committed,
		Digest:         h.Sum(committed),
		BombCount:      len(bombs),
		Warnings:       warnings,
	}, nil
}
