// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"

	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

//hasher names
const (
	NameSha256    = "sha256"
	NameSha3      = "sha3"
	NameKeccak256 = "keccak256"
	NameBlake2b   = "blake2b"
	NameSm3       = "sm3"
	NameMiMC      = "mimc"
)

// DefaultHasher is what the deployed board contract verifies against.
const DefaultHasher = NameSha256

// Hasher is a deterministic one-way digest over a byte sequence.
type Hasher interface {
	Name() string
	// Size is the digest length in bytes
	Size() int
	Sum(data []byte) []byte
}

var (
	hashers     = make(map[string]Hasher)
	hasherMutex sync.RWMutex
)

//RegisterHasher 注册摘要算法
func RegisterHasher(h Hasher) {
	hasherMutex.Lock()
	defer hasherMutex.Unlock()
	if h == nil {
		panic("crypto: RegisterHasher hasher is nil")
	}
	if _, dup := hashers[h.Name()]; dup {
		panic("crypto: RegisterHasher called twice for " + h.Name())
	}
	hashers[h.Name()] = h
}

//GetHasher 按名字获取摘要算法
func GetHasher(name string) (Hasher, error) {
	hasherMutex.RLock()
	defer hasherMutex.RUnlock()
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
	return h, nil
}

//HasherNames sorted list of registered hashers
func HasherNames() []string {
	hasherMutex.RLock()
	defer hasherMutex.RUnlock()
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterHasher(sha256Hasher{})
	RegisterHasher(sha3Hasher{})
	RegisterHasher(keccakHasher{})
	RegisterHasher(blake2bHasher{})
	RegisterHasher(sm3Hasher{})
	RegisterHasher(mimcHasher{})
}

type sha256Hasher struct{}

func (sha256Hasher) Name() string { return NameSha256 }
func (sha256Hasher) Size() int    { return sha256.Size }
func (sha256Hasher) Sum(data []byte) []byte {
	return Sha256(data)
}

type sha3Hasher struct{}

func (sha3Hasher) Name() string { return NameSha3 }
func (sha3Hasher) Size() int    { return 32 }
func (sha3Hasher) Sum(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

type keccakHasher struct{}

func (keccakHasher) Name() string { return NameKeccak256 }
func (keccakHasher) Size() int    { return 32 }
func (keccakHasher) Sum(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

type blake2bHasher struct{}

func (blake2bHasher) Name() string { return NameBlake2b }
func (blake2bHasher) Size() int    { return blake2b.Size256 }
func (blake2bHasher) Sum(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

type sm3Hasher struct{}

func (sm3Hasher) Name() string { return NameSm3 }
func (sm3Hasher) Size() int    { return 32 }
func (sm3Hasher) Sum(data []byte) []byte {
	return Sm3Hash(data)
}

// mimcHasher absorbs every input byte as its own bn254 field element,
// so the digest can be recomputed inside a circuit.
type mimcHasher struct{}

func (mimcHasher) Name() string { return NameMiMC }
func (mimcHasher) Size() int    { return 32 }
func (mimcHasher) Sum(data []byte) []byte {
	h := bnmimc.NewMiMC()
	var elem [32]byte
	for _, b := range data {
		elem[31] = b
		h.Write(elem[:])
	}
	return h.Sum(nil)
}
