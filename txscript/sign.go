// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/chaincfg/chainhash"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/btcprivate/btcptx/wire"
	"github.com/pkg/errors"
)

// Sign signs digest with key. Any failure of the key is returned as a
// *SigningError.
func Sign(key ecc.KeySigner, digest *chainhash.Hash) ([]byte, error) {
	return sign(key, digest, -1)
}

func sign(key ecc.KeySigner, digest *chainhash.Hash, idx int) ([]byte, error) {
	if key == nil {
		return nil, &SigningError{InputIndex: idx, Err: errors.New("no signing key")}
	}
	signature, err := key.Sign(digest[:])
	if err != nil {
		return nil, &SigningError{InputIndex: idx, Err: err}
	}
	if len(signature) == 0 {
		return nil, &SigningError{InputIndex: idx, Err: errors.New("signing key returned an empty signature")}
	}
	return signature, nil
}

// RawTxInSignature returns the serialized ECDSA signature for the input idx of
// the given transaction, with hashType appended to it.
func RawTxInSignature(params *chaincfg.Params, tx *wire.MsgTx, idx int, script []byte,
	hashType SigHashType, key ecc.KeySigner) ([]byte, error) {

	hash, err := CalcSignatureHash(params, tx, idx, script, hashType)
	if err != nil {
		return nil, err
	}
	signature, err := sign(key, hash, idx)
	if err != nil {
		return nil, err
	}

	return append(signature, byte(hashType)), nil
}

// SignatureScript creates an input signature script for tx to spend coins sent
// from a previous output to the owner of key. tx must include all transaction
// inputs and outputs, however txin scripts are allowed to be filled or empty.
// The returned script is calculated to be used as the idx'th txin sigscript
// for tx. script is the PkScript of the previous output being used as the idx'th
// input. key is serialized in either a compressed or uncompressed format
// based on compress.
func SignatureScript(params *chaincfg.Params, tx *wire.MsgTx, idx int, script []byte,
	hashType SigHashType, key ecc.KeySigner, compress bool) ([]byte, error) {

	sig, err := RawTxInSignature(params, tx, idx, script, hashType, key)
	if err != nil {
		return nil, err
	}

	pk, err := key.PubKey(compress)
	if err != nil {
		return nil, &SigningError{InputIndex: idx, Err: err}
	}

	return NewScriptBuilder().AddData(sig).AddData(pk).Script()
}

// SignTxInput returns a copy of tx whose input idx is signed by key. The
// input's PrevScriptPubKey is the script committed to by the signature.
// tx itself is not modified.
func SignTxInput(params *chaincfg.Params, tx *wire.MsgTx, idx int, key ecc.KeySigner,
	compress bool, hashType SigHashType) (*wire.MsgTx, error) {

	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, errors.Errorf("transaction input index %d is out of range "+
			"for a transaction with %d inputs", idx, len(tx.TxIn))
	}

	sigScript, err := signTxInput(params, tx, idx, key, compress, hashType)
	if err != nil {
		return nil, err
	}

	signedTx := tx.Copy()
	signedTx.TxIn[idx].SignatureScript = sigScript
	return signedTx, nil
}

func signTxInput(params *chaincfg.Params, tx *wire.MsgTx, idx int, key ecc.KeySigner,
	compress bool, hashType SigHashType) ([]byte, error) {

	prevScript := tx.TxIn[idx].PrevScriptPubKey
	if len(prevScript) == 0 {
		return nil, errors.Errorf("input %d has no previous output script to sign", idx)
	}

	sigScript, err := SignatureScript(params, tx, idx, prevScript, hashType, key, compress)
	if err != nil {
		return nil, err
	}
	log.Debugf("Signed input %d spending %s", idx, tx.TxIn[idx].PreviousOutPoint)
	return sigScript, nil
}

// SignAllInputs returns a copy of tx with every input signed by key. Since
// the signature form of an input ignores the other inputs' signature
// scripts, the order in which inputs are signed does not matter.
func SignAllInputs(params *chaincfg.Params, tx *wire.MsgTx, key ecc.KeySigner,
	compress bool, hashType SigHashType) (*wire.MsgTx, error) {

	signedTx := tx.Copy()
	for idx := range tx.TxIn {
		sigScript, err := signTxInput(params, tx, idx, key, compress, hashType)
		if err != nil {
			return nil, err
		}
		signedTx.TxIn[idx].SignatureScript = sigScript
	}
	return signedTx, nil
}
