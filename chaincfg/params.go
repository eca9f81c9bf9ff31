// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/pkg/errors"
)

// BTCPForkID is the fork id mixed into signature hash types on the networks
// defined in this package.
const BTCPForkID = 42

// Params defines a network by its parameters. These parameters may be used by
// applications to differentiate networks as well as addresses and keys for
// one network from those intended for use on another network.
//
// Params values are treated as immutable: components receive a *Params and
// never modify it, so several networks may be used within one process.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Address encoding magics. Both address kinds use a two byte version
	// prefix in front of the 20 byte hash.
	PubKeyHashAddrID [2]byte
	ScriptHashAddrID [2]byte

	// PrivateKeyID is the first byte of a WIF private key.
	PrivateKeyID byte

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// ForkID is the chain-specific value that augments the signature hash
	// type as hashType | ForkID<<8.
	ForkID uint32

	// ForkIDInSigHash selects whether the fork-id augmented hash type is the
	// value appended to the signature preimage. When false the plain hash
	// type is appended.
	ForkIDInSigHash bool
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:             "mainnet",
	PubKeyHashAddrID: [2]byte{0x13, 0x25},
	ScriptHashAddrID: [2]byte{0x13, 0xaf},
	PrivateKeyID:     0x80,
	HDPrivateKeyID:   [4]byte{0x04, 0x88, 0xad, 0xe4}, // starts with xprv
	HDPublicKeyID:    [4]byte{0x04, 0x88, 0xb2, 0x1e}, // starts with xpub
	ForkID:           BTCPForkID,
	ForkIDInSigHash:  false,
}

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name:             "testnet",
	PubKeyHashAddrID: [2]byte{0x19, 0x58},
	ScriptHashAddrID: [2]byte{0x19, 0xe0},
	PrivateKeyID:     0xef,
	HDPrivateKeyID:   [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:    [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub
	ForkID:           BTCPForkID,
	ForkIDInSigHash:  false,
}

// ErrUnknownHDKeyID describes an error where the provided id which
// is intended to identify the network for a hierarchical deterministic
// private extended key is not registered.
var ErrUnknownHDKeyID = errors.New("unknown hd private extended key bytes")

// WithForkIDInSigHash returns a copy of p with ForkIDInSigHash set to
// enabled. p itself is left untouched.
func (p *Params) WithForkIDInSigHash(enabled bool) *Params {
	params := *p
	params.ForkIDInSigHash = enabled
	return &params
}

// IsPubKeyHashAddrID returns whether id is the pay-to-pubkey-hash address
// prefix of the network.
func (p *Params) IsPubKeyHashAddrID(id [2]byte) bool {
	return id == p.PubKeyHashAddrID
}

// IsScriptHashAddrID returns whether id is the pay-to-script-hash address
// prefix of the network.
func (p *Params) IsScriptHashAddrID(id [2]byte) bool {
	return id == p.ScriptHashAddrID
}

// HDPrivateKeyToPublicKeyID accepts a private hierarchical deterministic
// extended key id and returns the associated public key id of the network.
// ErrUnknownHDKeyID is returned when id belongs to another network.
func (p *Params) HDPrivateKeyToPublicKeyID(id []byte) ([]byte, error) {
	if len(id) != 4 {
		return nil, ErrUnknownHDKeyID
	}

	var key [4]byte
	copy(key[:], id)
	if key != p.HDPrivateKeyID {
		return nil, ErrUnknownHDKeyID
	}

	pubBytes := p.HDPublicKeyID
	return pubBytes[:], nil
}

// KnownNets lists the networks defined in this package.
func KnownNets() []*Params {
	return []*Params{&MainNetParams, &TestNetParams}
}

// ParamsByName returns the network with the given name.
func ParamsByName(name string) (*Params, error) {
	for _, params := range KnownNets() {
		if params.Name == name {
			return params, nil
		}
	}
	return nil, errors.Errorf("unknown network %q", name)
}
