package txscript

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/btcprivate/btcptx/wire"
	"github.com/pkg/errors"
)

// PartialSign returns the signature of key over input idx of tx when the
// input redeems redeemScript. The result is the DER signature followed by
// the hash type byte, ready to be passed to AssembleMultiSigScript.
func PartialSign(params *chaincfg.Params, tx *wire.MsgTx, idx int, key ecc.KeySigner,
	redeemScript []byte, hashType SigHashType) ([]byte, error) {

	return RawTxInSignature(params, tx, idx, redeemScript, hashType, key)
}

// AssembleMultiSigScript returns a copy of tx whose input idx spends a
// multisig redeem script with the given signatures:
//	OP_0 <sig>... <redeemScript>
//
// Every element is pushed canonically, so the redeem script takes a single
// length byte only when it is 75 bytes or less. Longer scripts, such as a
// 105 byte 2-of-3, get OP_PUSHDATA1 and a length byte (see PushDataPrefixLen).
//
// The signatures are used in the given order and are not modified. Script
// validation requires them to follow the order of their public keys in
// redeemScript; CheckSignatureOrder can verify that before relaying.
func AssembleMultiSigScript(tx *wire.MsgTx, idx int, signatures [][]byte,
	redeemScript []byte) (*wire.MsgTx, error) {

	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, aggregationError(idx, nil, "input index is out of range for "+
			"a transaction with %d inputs", len(tx.TxIn))
	}

	nRequired, pubKeys, err := ExtractMultiSigParams(redeemScript)
	if err != nil {
		return nil, aggregationError(idx, err, "redeem script is not a multisig script")
	}
	if len(signatures) > len(pubKeys) {
		return nil, aggregationError(idx, nil, "%d signatures given for a "+
			"redeem script with %d public keys", len(signatures), len(pubKeys))
	}
	if len(signatures) < nRequired {
		log.Debugf("Input %d holds %d of %d required signatures",
			idx, len(signatures), nRequired)
	}

	builder := NewScriptBuilder().AddOp(OP_0)
	for i, signature := range signatures {
		if len(signature) == 0 {
			return nil, aggregationError(idx, nil, "signature %d is empty", i)
		}
		err := ecc.ParseDERSignature(signature[:len(signature)-1])
		if err != nil {
			return nil, aggregationError(idx, err, "signature %d is not DER encoded", i)
		}
		builder.AddData(signature)
	}
	builder.AddData(redeemScript)

	sigScript, err := builder.Script()
	if err != nil {
		return nil, aggregationError(idx, err, "cannot build the signature script")
	}

	assembledTx := tx.Copy()
	assembledTx.TxIn[idx].SignatureScript = sigScript
	return assembledTx, nil
}

// CheckSignatureOrder verifies signatures against the public keys of
// redeemScript the way OP_CHECKMULTISIG consumes them: each signature must
// match a key that comes after the key matched by the previous signature.
// Each signature is checked under the hash type it carries.
func CheckSignatureOrder(params *chaincfg.Params, tx *wire.MsgTx, idx int,
	signatures [][]byte, redeemScript []byte) error {

	_, pubKeys, err := ExtractMultiSigParams(redeemScript)
	if err != nil {
		return aggregationError(idx, err, "redeem script is not a multisig script")
	}

	keyIdx := 0
	for i, signature := range signatures {
		if len(signature) == 0 {
			return aggregationError(idx, nil, "signature %d is empty", i)
		}
		hashType := SigHashType(signature[len(signature)-1])
		hash, err := CalcSignatureHash(params, tx, idx, redeemScript, hashType)
		if err != nil {
			return aggregationError(idx, err, "cannot hash signature %d", i)
		}

		matched := false
		for ; keyIdx < len(pubKeys) && !matched; keyIdx++ {
			valid, err := ecc.VerifySignature(pubKeys[keyIdx], hash[:], signature[:len(signature)-1])
			if err != nil {
				return aggregationError(idx, err, "cannot verify signature %d", i)
			}
			matched = valid
		}
		if !matched {
			return aggregationError(idx, errors.New("signatures out of order"),
				"signature %d matches none of the remaining public keys", i)
		}
	}
	return nil
}
