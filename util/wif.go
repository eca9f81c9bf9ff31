// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// privKeyBytesLen is the length of a serialized secp256k1 private key.
const privKeyBytesLen = 32

// compressMagic is the magic byte used to identify a WIF encoding for
// an address created from a compressed serialized public key.
const compressMagic byte = 0x01

// ErrMalformedPrivateKey describes an error where a WIF-encoded private
// key cannot be decoded due to being improperly formatted.
var ErrMalformedPrivateKey = errors.New("malformed private key")

// WIF contains the individual components described by the Wallet Import
// Format (WIF). A WIF string is typically used to represent a private key and
// its associated address in a way that may be easily copied and imported into
// or exported from wallet software.
type WIF struct {
	// PrivKey is the 32 byte big-endian private key scalar.
	PrivKey []byte

	// CompressPubKey specifies whether the address controlled by the
	// imported or exported private key was created by hashing a
	// compressed (33-byte) serialized public key, rather than an
	// uncompressed (65-byte) one.
	CompressPubKey bool

	// netID is the network identifier byte used when
	// WIF encoding the private key.
	netID byte
}

// NewWIF creates a new WIF structure to export an address and its private key
// as a string encoded in the Wallet Import Format. The compress argument
// specifies whether the address intended to be imported or exported was created
// by serializing the public key compressed rather than uncompressed.
func NewWIF(privKey []byte, params *chaincfg.Params, compress bool) (*WIF, error) {
	if len(privKey) != privKeyBytesLen {
		return nil, errors.Errorf("private key must be %d bytes, got %d",
			privKeyBytesLen, len(privKey))
	}
	key := make([]byte, privKeyBytesLen)
	copy(key, privKey)
	return &WIF{PrivKey: key, CompressPubKey: compress, netID: params.PrivateKeyID}, nil
}

// IsForNet returns whether or not the decoded WIF structure is associated
// with the passed network.
func (w *WIF) IsForNet(params *chaincfg.Params) bool {
	return w.netID == params.PrivateKeyID
}

// DecodeWIF creates a new WIF structure by decoding the string encoding of
// the import format.
//
// The WIF string must be a base58-encoded string of the following byte
// sequence:
//
//  * 1 byte to identify the network, must be 0x80 for mainnet or 0xef for
//    testnet
//  * 32 bytes of a binary-encoded, big-endian, zero-padded private key
//  * Optional 1 byte (equal to 0x01) if the address being imported or exported
//    was created by taking the RIPEMD160 after SHA256 hash of a serialized
//    compressed (33-byte) public key
//  * 4 bytes of checksum, must equal the first four bytes of the double SHA256
//    of every byte before the checksum in this sequence
//
// If the base58-decoded byte sequence does not match this, DecodeWIF will
// return a non-nil error. ErrMalformedPrivateKey is returned when the WIF
// is of an impossible length or the expected compressed pubkey magic number
// does not equal the expected value of 0x01. ErrChecksumMismatch is returned
// if the expected WIF checksum does not match the calculated checksum.
func DecodeWIF(wif string) (*WIF, error) {
	decoded, netID, err := base58.CheckDecode(wif)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, ErrChecksumMismatch
		}
		return nil, ErrMalformedPrivateKey
	}

	var compress bool
	switch len(decoded) {
	case privKeyBytesLen + 1:
		if decoded[privKeyBytesLen] != compressMagic {
			return nil, ErrMalformedPrivateKey
		}
		compress = true
	case privKeyBytesLen:
		compress = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	privKey := make([]byte, privKeyBytesLen)
	copy(privKey, decoded[:privKeyBytesLen])
	return &WIF{PrivKey: privKey, CompressPubKey: compress, netID: netID}, nil
}

// String creates the Wallet Import Format string encoding of a WIF structure.
// See DecodeWIF for a detailed breakdown of the format and requirements of
// a valid WIF string.
func (w *WIF) String() string {
	payload := make([]byte, 0, privKeyBytesLen+1)
	payload = append(payload, w.PrivKey...)
	if w.CompressPubKey {
		payload = append(payload, compressMagic)
	}
	return base58.CheckEncode(payload, w.netID)
}
