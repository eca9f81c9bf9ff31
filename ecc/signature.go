// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
)

// ParseDERSignature checks that sig is a strict DER encoded signature.
func ParseDERSignature(sig []byte) error {
	_, err := ecdsa.ParseDERSignature(sig)
	return errors.WithStack(err)
}

// ParsePubKey checks that pubKey is a serialized public key on the curve.
func ParsePubKey(pubKey []byte) error {
	_, err := btcec.ParsePubKey(pubKey)
	return errors.WithStack(err)
}

// VerifySignature reports whether the DER signature sig over hash was made
// by the key serialized in pubKey.
func VerifySignature(pubKey, hash, sig []byte) (bool, error) {
	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false, errors.WithStack(err)
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return signature.Verify(hash, key), nil
}
