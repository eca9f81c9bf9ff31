// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"io"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/chaincfg/chainhash"
	"github.com/btcprivate/btcptx/util/binaryserializer"
	"github.com/btcprivate/btcptx/wire"
	"github.com/pkg/errors"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint32

// Hash type bits from the end of a signature.
const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashForkID       SigHashType = 0x40
	SigHashAnyOneCanPay SigHashType = 0x80

	// SigHashDefault is the hash type used unless the caller asks for
	// another one.
	SigHashDefault = SigHashAll | SigHashForkID

	// sigHashMask defines the number of bits of the hash type which is used
	// to identify which outputs are signed.
	sigHashMask = 0x1f
)

// ErrInvalidSigHashType is returned for a hash type whose base type is not
// all, none or single, or which carries unknown flag bits.
var ErrInvalidSigHashType = errors.New("invalid signature hash type")

// IsStandardSigHashType returns whether hashType is one of the known base
// types with any combination of the fork id and anyone-can-pay flags.
func (hashType SigHashType) IsStandardSigHashType() bool {
	if hashType&^(sigHashMask|SigHashForkID|SigHashAnyOneCanPay) != 0 {
		return false
	}
	switch hashType & sigHashMask {
	case SigHashAll, SigHashNone, SigHashSingle:
		return true
	default:
		return false
	}
}

// SignatureForm returns the transaction whose serialization is signed for
// input idx: a copy of tx in which input idx carries script as its signature
// script and is the only input left. The outputs are kept as they are.
//
// Every standard hash type produces this same form. The none, single and
// anyone-can-pay base types are accepted and travel in the hash type value
// appended to the preimage, but they don't alter which parts of the
// transaction are committed to.
func SignatureForm(tx *wire.MsgTx, idx int, script []byte, hashType SigHashType) (*wire.MsgTx, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, errors.Errorf("transaction input index %d is out of range "+
			"for a transaction with %d inputs", idx, len(tx.TxIn))
	}
	if !hashType.IsStandardSigHashType() {
		return nil, errors.Wrapf(ErrInvalidSigHashType, "hash type %#x", uint32(hashType))
	}

	txCopy := tx.Copy()
	for _, txIn := range txCopy.TxIn {
		txIn.SignatureScript = nil
	}
	signedIn := txCopy.TxIn[idx]
	if len(script) > 0 {
		signedIn.SignatureScript = append([]byte(nil), script...)
	}
	txCopy.TxIn = []*wire.TxIn{signedIn}

	return txCopy, nil
}

// sigHashTypeValue returns the 32 bit value appended to the preimage. The
// fork id takes part only on networks that enable ForkIDInSigHash.
func sigHashTypeValue(params *chaincfg.Params, hashType SigHashType) uint32 {
	if params.ForkIDInSigHash {
		return uint32(hashType) | params.ForkID<<8
	}
	return uint32(hashType)
}

func writeSigHashPreimage(w io.Writer, params *chaincfg.Params, tx *wire.MsgTx,
	idx int, script []byte, hashType SigHashType) error {

	form, err := SignatureForm(tx, idx, script, hashType)
	if err != nil {
		return err
	}
	err = form.Serialize(w)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint32(w, sigHashTypeValue(params, hashType))
}

// SigHashPreimage returns the bytes that are double hashed to produce the
// digest signed for input idx: the serialized SignatureForm followed by the
// little-endian 32 bit hash type value.
func SigHashPreimage(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	script []byte, hashType SigHashType) ([]byte, error) {

	var buf bytes.Buffer
	err := writeSigHashPreimage(&buf, params, tx, idx, script, hashType)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CalcSignatureHash returns the digest signed for input idx of tx, with
// script standing in for the input's signature script.
func CalcSignatureHash(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	script []byte, hashType SigHashType) (*chainhash.Hash, error) {

	writer := chainhash.NewDoubleHashWriter()
	err := writeSigHashPreimage(writer, params, tx, idx, script, hashType)
	if err != nil {
		return nil, err
	}
	hash := writer.Finalize()

	log.Tracef("Signature hash of input %d with hash type %#x: %s", idx, uint32(hashType), hash)
	return &hash, nil
}
