// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// hash160Size is the size of the hash carried by both address kinds.
const hash160Size = 20

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownAddressType describes an error where an address can not
	// decoded as a specific address type due to the string encoding
	// beginning with a version prefix unknown to the network it is
	// decoded for.
	ErrUnknownAddressType = errors.New("unknown address type")
)

// Address is an interface type for any type of destination a transaction
// output may spend to. The concrete type is decided once, when the address
// is decoded.
type Address interface {
	// String returns the string encoding of the transaction output
	// destination.
	String() string

	// EncodeAddress returns the string encoding of the address.
	EncodeAddress() string

	// ScriptAddress returns the raw bytes of the address to be used
	// when inserting the address into a txout's script.
	ScriptAddress() []byte

	// IsForNet returns whether or not the address is associated with the
	// passed network.
	IsForNet(*chaincfg.Params) bool
}

// encodeAddress base58-check encodes a 20 byte hash behind its two byte
// version prefix.
func encodeAddress(hash160 []byte, prefix [2]byte) string {
	payload := make([]byte, 0, 1+hash160Size)
	payload = append(payload, prefix[1])
	payload = append(payload, hash160...)
	return base58.CheckEncode(payload, prefix[0])
}

// DecodeAddress decodes the string encoding of an address and returns
// the Address if addr is a valid encoding for a known address type.
//
// The address type is picked by matching the two byte version prefix of the
// decoded payload against the prefixes of params.
func DecodeAddress(addr string, params *chaincfg.Params) (Address, error) {
	decoded, version, err := base58.CheckDecode(addr)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, ErrChecksumMismatch
		}
		return nil, errors.Wrapf(err, "decoded address %q is of unknown format", addr)
	}
	if len(decoded) != 1+hash160Size {
		return nil, errors.Errorf("decoded address %q is of unknown size %d",
			addr, len(decoded)+1)
	}

	prefix := [2]byte{version, decoded[0]}
	hash := decoded[1:]
	switch {
	case params.IsPubKeyHashAddrID(prefix):
		return newAddressPubKeyHash(hash, prefix)
	case params.IsScriptHashAddrID(prefix):
		return newAddressScriptHashFromHash(hash, prefix)
	default:
		return nil, errors.Wrapf(ErrUnknownAddressType,
			"prefix %x is not a %s address prefix", prefix, params.Name)
	}
}

// AddressPubKeyHash is an Address for a pay-to-pubkey-hash (P2PKH)
// transaction.
type AddressPubKeyHash struct {
	hash   [hash160Size]byte
	prefix [2]byte
}

// NewAddressPubKeyHash returns a new AddressPubKeyHash. pkHash must be 20
// bytes.
func NewAddressPubKeyHash(pkHash []byte, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	return newAddressPubKeyHash(pkHash, params.PubKeyHashAddrID)
}

// NewAddressPubKeyHashFromPublicKey returns the pay-to-pubkey-hash address of
// a serialized public key.
func NewAddressPubKeyHashFromPublicKey(serializedPubKey []byte, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	return NewAddressPubKeyHash(Hash160(serializedPubKey), params)
}

func newAddressPubKeyHash(pkHash []byte, prefix [2]byte) (*AddressPubKeyHash, error) {
	if len(pkHash) != hash160Size {
		return nil, errors.New("pkHash must be 20 bytes")
	}

	addr := &AddressPubKeyHash{prefix: prefix}
	copy(addr.hash[:], pkHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-pubkey-hash
// address. Part of the Address interface.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return encodeAddress(a.hash[:], a.prefix)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a pubkey hash. Part of the Address interface.
func (a *AddressPubKeyHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-pubkey-hash address is associated
// with the passed network.
func (a *AddressPubKeyHash) IsForNet(params *chaincfg.Params) bool {
	return a.prefix == params.PubKeyHashAddrID
}

// String returns a human-readable string for the pay-to-pubkey-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type can
// be used as a fmt.Stringer.
func (a *AddressPubKeyHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the pubkey hash.
func (a *AddressPubKeyHash) Hash160() *[hash160Size]byte {
	return &a.hash
}

// AddressScriptHash is an Address for a pay-to-script-hash (P2SH)
// transaction.
type AddressScriptHash struct {
	hash   [hash160Size]byte
	prefix [2]byte
}

// NewAddressScriptHash returns a new AddressScriptHash paying to the hash160
// of serializedScript.
func NewAddressScriptHash(serializedScript []byte, params *chaincfg.Params) (*AddressScriptHash, error) {
	scriptHash := Hash160(serializedScript)
	return newAddressScriptHashFromHash(scriptHash, params.ScriptHashAddrID)
}

// NewAddressScriptHashFromHash returns a new AddressScriptHash. scriptHash
// must be 20 bytes.
func NewAddressScriptHashFromHash(scriptHash []byte, params *chaincfg.Params) (*AddressScriptHash, error) {
	return newAddressScriptHashFromHash(scriptHash, params.ScriptHashAddrID)
}

func newAddressScriptHashFromHash(scriptHash []byte, prefix [2]byte) (*AddressScriptHash, error) {
	if len(scriptHash) != hash160Size {
		return nil, errors.New("scriptHash must be 20 bytes")
	}

	addr := &AddressScriptHash{prefix: prefix}
	copy(addr.hash[:], scriptHash)
	return addr, nil
}

// EncodeAddress returns the string encoding of a pay-to-script-hash
// address. Part of the Address interface.
func (a *AddressScriptHash) EncodeAddress() string {
	return encodeAddress(a.hash[:], a.prefix)
}

// ScriptAddress returns the bytes to be included in a txout script to pay
// to a script hash. Part of the Address interface.
func (a *AddressScriptHash) ScriptAddress() []byte {
	return a.hash[:]
}

// IsForNet returns whether or not the pay-to-script-hash address is associated
// with the passed network.
func (a *AddressScriptHash) IsForNet(params *chaincfg.Params) bool {
	return a.prefix == params.ScriptHashAddrID
}

// String returns a human-readable string for the pay-to-script-hash address.
// This is equivalent to calling EncodeAddress, but is provided so the type can
// be used as a fmt.Stringer.
func (a *AddressScriptHash) String() string {
	return a.EncodeAddress()
}

// Hash160 returns the underlying array of the script hash.
func (a *AddressScriptHash) Hash160() *[hash160Size]byte {
	return &a.hash
}
