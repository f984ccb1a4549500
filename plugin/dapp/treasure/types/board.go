// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// NearNomination is the exponent between one NEAR and one yocto
const NearNomination = 24

var yoctoPerNear = new(big.Int).Exp(big.NewInt(10), big.NewInt(NearNomination), nil)

// BoardSize is one of Small, Medium or Big
type BoardSize int32

var sizeLabels = map[BoardSize]string{
	BoardSmall:  "Small",
	BoardMedium: "Medium",
	BoardBig:    "Big",
}

var slotCounts = map[BoardSize]int{
	BoardSmall:  4,
	BoardMedium: 16,
	BoardBig:    32,
}

func (s BoardSize) String() string {
	if label, ok := sizeLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("BoardSize(%d)", int32(s))
}

// Valid reports whether s is one of the three known sizes
func (s BoardSize) Valid() bool {
	_, ok := sizeLabels[s]
	return ok
}

// MarshalJSON encodes the label the contract expects
func (s BoardSize) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrInvalidSize, "marshal %d", int32(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a label
func (s *BoardSize) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return errors.Wrap(ErrInvalidSize, err.Error())
	}
	size, err := SizeFromLabel(label)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// SizeFromLabel maps small, medium or big in any case to a size
func SizeFromLabel(label string) (BoardSize, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for size, l := range sizeLabels {
		if strings.ToLower(l) == normalized {
			return size, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidSize, "unknown size %q", label)
}

// SizeFromLabelWithPolicy is SizeFromLabel with an opt-in fallback to Small.
// The fallback is reported through the returned warnings.
func SizeFromLabelWithPolicy(label string, policy TokenPolicy) (BoardSize, []string, error) {
	size, err := SizeFromLabel(label)
	if err == nil {
		return size, nil, nil
	}
	if !policy.Has(PolicyIndexFallback) {
		return 0, nil, err
	}
	return BoardSmall, []string{fmt.Sprintf("invalid size %q, defaulting to Small", label)}, nil
}

// SlotCount returns 4, 16 or 32, and 0 for an invalid size
func SlotCount(size BoardSize) int {
	return slotCounts[size]
}

// MinBombs is the least number of bombs a board of slotCount slots accepts
func MinBombs(slotCount int) int {
	return slotCount / 2
}

// CheckSlot reports ErrOutOfRangeSlot unless 0 <= slot < slotCount
func CheckSlot(slot, slotCount int) error {
	if slot < 0 || slot >= slotCount {
		return errors.Wrapf(ErrOutOfRangeSlot, "slot %d not in [0, %d)", slot, slotCount)
	}
	return nil
}

// StakeAmount is the deposit to create a board: one stake unit per slot.
// A nil unit means one NEAR in yocto.
func StakeAmount(slotCount int, unit *big.Int) *big.Int {
	if unit == nil {
		unit = yoctoPerNear
	}
	return new(big.Int).Mul(big.NewInt(int64(slotCount)), unit)
}

// YoctoPerNear returns a fresh copy of 10^24
func YoctoPerNear() *big.Int {
	return new(big.Int).Set(yoctoPerNear)
}

// FormatStake renders a yocto amount as NEAR without losing precision
func FormatStake(yocto *big.Int) string {
	if yocto == nil {
		return "0 NEAR"
	}
	return decimal.NewFromBigInt(yocto, -NearNomination).String() + " NEAR"
}
