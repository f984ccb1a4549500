// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commitment

import (
	"crypto/subtle"

	"github.com/33cn/treasureboard/common"
	"github.com/33cn/treasureboard/common/crypto"
	ttypes "github.com/33cn/treasureboard/plugin/dapp/treasure/types"
	"github.com/pkg/errors"
)

// Verdict of a local reveal check. Digest is always set.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Digest []byte `json:"digest"`
}

// VerifyReveal hashes the claimed solution verbatim and compares it with the
// commitment. A nil commitment yields Valid=false with the digest filled in.
func VerifyReveal(h crypto.Hasher, solution []byte, commitment []byte) *Verdict {
	digest := h.Sum(solution)
	valid := len(commitment) == len(digest) && subtle.ConstantTimeCompare(digest, commitment) == 1
	return &Verdict{Valid: valid, Digest: digest}
}

// DecodeDigest reads a hex digest of exactly h.Size() bytes
func DecodeDigest(h crypto.Hasher, s string) ([]byte, error) {
	digest, err := common.FromHex(s)
	if err != nil {
		return nil, errors.Wrapf(ttypes.ErrInvalidDigest, "%q: %v", s, err)
	}
	if len(digest) != h.Size() {
		return nil, errors.Wrapf(ttypes.ErrInvalidDigest, "%q has %d bytes, %s digests have %d", s, len(digest), h.Name(), h.Size())
	}
	return digest, nil
}

// VerifyRevealHex is VerifyReveal against a hex answer hash as listed by the remote
func VerifyRevealHex(h crypto.Hasher, solution []byte, answerHash string) (*Verdict, error) {
	commitment, err := DecodeDigest(h, answerHash)
	if err != nil {
		return nil, err
	}
	return VerifyReveal(h, solution, commitment), nil
}

// SolutionFromInts refuses any value outside [0,255] and converts the rest
func SolutionFromInts(values []int) ([]byte, error) {
	if len(values) == 0 {
		return nil, ttypes.ErrEmptySolution
	}
	args := &ttypes.RevealArgs{Solution: values}
	return args.SolutionBytes()
}

// Settle splits the reservations of a board into bombs and safe slots. The
// first board.Bombs() bytes of the solution are the bomb slots.
func Settle(board *ttypes.GameBoard, solution []byte) ([]ttypes.SlotResult, error) {
	n := board.Bombs()
	if len(solution) < n {
		return nil, errors.Wrapf(ttypes.ErrInsufficientBombs, "solution has %d bytes, board has %d bombs", len(solution), n)
	}
	bombs := make(map[int]bool, n)
	for _, b := range solution[:n] {
		bombs[int(b)] = true
	}
	results := make([]ttypes.SlotResult, 0, len(board.Answers))
	for i, slot := range board.Answers {
		r := ttypes.SlotResult{Slot: slot, Bomb: bombs[slot]}
		if i < len(board.Players) {
			r.Player = board.Players[i]
		}
		results = append(results, r)
	}
	return results, nil
}
