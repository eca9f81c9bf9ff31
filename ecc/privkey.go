// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = btcec.PrivKeyBytesLen

// ErrInvalidPrivateKey is returned for a private key scalar that is zero or
// not below the group order.
var ErrInvalidPrivateKey = errors.New("invalid private key")

// ErrNilPrivateKey is returned when a nil or zero value PrivateKey is used.
var ErrNilPrivateKey = errors.New("private key is not initialized")

// KeySigner is a private key able to produce signatures over a 32 byte
// digest and to derive its serialized public key.
type KeySigner interface {
	// Sign returns the DER encoding of a signature over hash.
	Sign(hash []byte) ([]byte, error)

	// PubKey returns the serialized public key, 33 bytes when compressed
	// and 65 bytes otherwise.
	PubKey(compressed bool) ([]byte, error)
}

// PrivateKey is a secp256k1 private key signing with RFC6979 deterministic
// nonces and producing low-S signatures.
type PrivateKey struct {
	key *btcec.PrivateKey
}

var _ KeySigner = (*PrivateKey)(nil)

// ParsePrivateKey parses a 32 byte big-endian private key scalar.
func ParsePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivKeyBytesLen {
		return nil, errors.Wrapf(ErrInvalidPrivateKey,
			"private key must be %d bytes, got %d", PrivKeyBytesLen, len(b))
	}

	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(b)
	if overflow {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "private key is not below the group order")
	}
	if scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "private key is zero")
	}

	return &PrivateKey{key: btcec.PrivKeyFromScalar(&scalar)}, nil
}

// GeneratePrivateKey returns a new random private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &PrivateKey{key: key}, nil
}

// Serialize returns the private key as a 32 byte big-endian scalar.
func (p *PrivateKey) Serialize() []byte {
	return p.key.Serialize()
}

// Sign signs hash, which must be 32 bytes. The signature is checked against
// the public key before it is returned.
func (p *PrivateKey) Sign(hash []byte) ([]byte, error) {
	if p == nil || p.key == nil {
		return nil, errors.WithStack(ErrNilPrivateKey)
	}
	if len(hash) != 32 {
		return nil, errors.Errorf("hash must be 32 bytes, got %d", len(hash))
	}

	signature := ecdsa.Sign(p.key, hash)
	if !signature.Verify(hash, p.key.PubKey()) {
		return nil, errors.New("produced signature does not verify")
	}
	return signature.Serialize(), nil
}

// PubKey returns the serialized public key of p.
func (p *PrivateKey) PubKey(compressed bool) ([]byte, error) {
	if p == nil || p.key == nil {
		return nil, errors.WithStack(ErrNilPrivateKey)
	}
	pubKey := p.key.PubKey()
	if compressed {
		return pubKey.SerializeCompressed(), nil
	}
	return pubKey.SerializeUncompressed(), nil
}
