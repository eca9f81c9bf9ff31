// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/btcprivate/btcptx/util"
	"github.com/pkg/errors"
)

const (
	// MaxPubKeysPerMultiSig is the maximum number of public keys a redeem
	// script built by MultiSigScript may carry. The counts are encoded with
	// the small integer opcodes.
	MaxPubKeysPerMultiSig = 16

	hash160Len = 20
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy       ScriptClass = iota // None of the recognized forms.
	PubKeyHashReplayTy                     // Pay pubkey hash, replay protected.
	ScriptHashReplayTy                     // Pay to script hash, replay protected.
	MultiSigTy                             // Bare multi-signature redeem script.
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy:      "nonstandard",
	PubKeyHashReplayTy: "pubkeyhash",
	ScriptHashReplayTy: "scripthash",
	MultiSigTy:         "multisig",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// isPubKeyHashReplay returns true if the script passed is a replay protected
// pay-to-pubkey-hash script.
func isPubKeyHashReplay(pops []parsedOpcode) bool {
	return len(pops) == 5 &&
		pops[0].opcode == OP_DUP &&
		pops[1].opcode == OP_HASH160 &&
		pops[2].opcode == OP_DATA_20 &&
		pops[3].opcode == OP_EQUALVERIFY &&
		pops[4].opcode == OP_CHECKSIG
}

// isScriptHashReplay returns true if the script passed is a replay protected
// pay-to-script-hash script.
func isScriptHashReplay(pops []parsedOpcode) bool {
	return len(pops) == 3 &&
		pops[0].opcode == OP_HASH160 &&
		pops[1].opcode == OP_DATA_20 &&
		pops[2].opcode == OP_EQUAL
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not parse.
func GetScriptClass(script []byte) ScriptClass {
	pops, err := parseScript(script)
	if err != nil {
		return NonStandardTy
	}
	switch {
	case isPubKeyHashReplay(pops):
		return PubKeyHashReplayTy
	case isScriptHashReplay(pops):
		return ScriptHashReplayTy
	}
	if _, _, err := extractMultiSigParams(pops); err == nil {
		return MultiSigTy
	}
	return NonStandardTy
}

// PayToPubKeyHashReplayScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash:
//	OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG
func PayToPubKeyHashReplayScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != hash160Len {
		return nil, errors.Errorf("public key hash must be %d bytes, got %d",
			hash160Len, len(pubKeyHash))
	}
	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}

// PayToScriptHashReplayScript creates a new script to pay a transaction
// output to a script hash:
//	OP_HASH160 <hash> OP_EQUAL
func PayToScriptHashReplayScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != hash160Len {
		return nil, errors.Errorf("script hash must be %d bytes, got %d",
			hash160Len, len(scriptHash))
	}
	return NewScriptBuilder().AddOp(OP_HASH160).AddData(scriptHash).
		AddOp(OP_EQUAL).Script()
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address. The template follows from the concrete address type,
// which util.DecodeAddress picks from the address version prefix.
func PayToAddrScript(addr util.Address) ([]byte, error) {
	const nilAddrErrStr = "unable to generate payment script for nil address"

	switch addr := addr.(type) {
	case *util.AddressPubKeyHash:
		if addr == nil {
			return nil, errors.New(nilAddrErrStr)
		}
		return PayToPubKeyHashReplayScript(addr.ScriptAddress())

	case *util.AddressScriptHash:
		if addr == nil {
			return nil, errors.New(nilAddrErrStr)
		}
		return PayToScriptHashReplayScript(addr.ScriptAddress())

	case nil:
		return nil, errors.New(nilAddrErrStr)
	}

	return nil, errors.Errorf("unable to generate payment script for unsupported "+
		"address type %T", addr)
}

// AddressToScript decodes an address of the network described by params and
// returns the script paying to it.
func AddressToScript(address string, params *chaincfg.Params) ([]byte, error) {
	addr, err := util.DecodeAddress(address, params)
	if err != nil {
		return nil, err
	}
	return PayToAddrScript(addr)
}

// ExtractScriptAddress returns the address a replay protected pay-to-pubkey-hash
// or pay-to-script-hash script pays to.
func ExtractScriptAddress(script []byte, params *chaincfg.Params) (util.Address, error) {
	pops, err := parseScript(script)
	if err != nil {
		return nil, err
	}
	switch {
	case isPubKeyHashReplay(pops):
		return util.NewAddressPubKeyHash(pops[2].data, params)
	case isScriptHashReplay(pops):
		return util.NewAddressScriptHashFromHash(pops[1].data, params)
	}
	return nil, errors.Errorf("script %x does not pay to an address", script)
}

// MultiSigScript returns a valid script for a multisignature redemption where
// nRequired of the keys in pubKeys are required to have signed the
// transaction for success:
//	OP_<nRequired> <pubKey>... OP_<len(pubKeys)> OP_CHECKMULTISIG
//
// Signatures must later be supplied in the order of pubKeys.
func MultiSigScript(pubKeys [][]byte, nRequired int) ([]byte, error) {
	if len(pubKeys) == 0 || len(pubKeys) > MaxPubKeysPerMultiSig {
		return nil, errors.Errorf("a multisig script takes 1 to %d public keys, got %d",
			MaxPubKeysPerMultiSig, len(pubKeys))
	}
	if nRequired < 1 || nRequired > len(pubKeys) {
		return nil, errors.Errorf("unable to generate multisig script with "+
			"%d required signatures when there are only %d public "+
			"keys available", nRequired, len(pubKeys))
	}

	builder := NewScriptBuilder().AddInt64(int64(nRequired))
	for i, pubKey := range pubKeys {
		err := ecc.ParsePubKey(pubKey)
		if err != nil {
			return nil, errors.Wrapf(err, "public key %d is invalid", i)
		}
		builder.AddData(pubKey)
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(OP_CHECKMULTISIG)

	return builder.Script()
}

// ExtractMultiSigParams returns the number of required signatures and the
// public keys of a redeem script of the form built by MultiSigScript.
func ExtractMultiSigParams(script []byte) (nRequired int, pubKeys [][]byte, err error) {
	pops, err := parseScript(script)
	if err != nil {
		return 0, nil, err
	}
	return extractMultiSigParams(pops)
}

func extractMultiSigParams(pops []parsedOpcode) (int, [][]byte, error) {
	// OP_m, at least one key, OP_n and OP_CHECKMULTISIG.
	if len(pops) < 4 {
		return 0, nil, errors.New("script is too short to be a multisig script")
	}
	if pops[len(pops)-1].opcode != OP_CHECKMULTISIG {
		return 0, nil, errors.New("multisig script must end with OP_CHECKMULTISIG")
	}

	first, last := pops[0].opcode, pops[len(pops)-2].opcode
	if !isSmallInt(first) || !isSmallInt(last) {
		return 0, nil, errors.New("multisig script counts must be small integers")
	}
	nRequired, nKeys := asSmallInt(first), asSmallInt(last)

	keyPops := pops[1 : len(pops)-2]
	if len(keyPops) != nKeys {
		return 0, nil, errors.Errorf("multisig script declares %d keys but holds %d",
			nKeys, len(keyPops))
	}
	if nRequired < 1 || nRequired > nKeys {
		return 0, nil, errors.Errorf("multisig script requires %d of %d signatures",
			nRequired, nKeys)
	}

	pubKeys := make([][]byte, 0, nKeys)
	for _, pop := range keyPops {
		if pop.opcode != OP_DATA_33 && pop.opcode != OP_DATA_65 {
			return 0, nil, errors.Errorf("multisig script holds a non public key "+
				"push of %d bytes", len(pop.data))
		}
		pubKeys = append(pubKeys, pop.data)
	}
	return nRequired, pubKeys, nil
}
