package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/infrastructure/logger"
	"github.com/btcprivate/btcptx/txscript"
	"github.com/btcprivate/btcptx/util"
	"github.com/btcprivate/btcptx/wire"
	"github.com/pkg/errors"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		os.Exit(1)
	}

	err = initLog(cfg)
	if err != nil {
		printErrorAndExit(err, "Failed to initialize logging")
	}

	transaction, err := parseTransaction(cfg)
	if err != nil {
		printErrorAndExit(err, "Failed to decode transaction")
	}

	params := cfg.NetParams()
	if len(cfg.Signatures) > 0 {
		assembledTransaction, err := assembleMultiSig(cfg, params, transaction)
		if err != nil {
			printErrorAndExit(err, "Failed to assemble signatures")
		}
		printTransaction(assembledTransaction)
		return
	}

	key, err := resolveSigningKey(cfg, params)
	if err != nil {
		printErrorAndExit(err, "Failed to decode private key")
	}

	if cfg.RedeemScript != "" {
		signature, err := partialSign(cfg, params, transaction, key)
		if err != nil {
			printErrorAndExit(err, "Failed to sign transaction")
		}
		fmt.Printf("Partial signature of input %d (hex): %x\n\n", cfg.Input, signature)
		return
	}

	signedTransaction, err := signTransaction(cfg, params, transaction, key)
	if err != nil {
		printErrorAndExit(err, "Failed to sign transaction")
	}
	printTransaction(signedTransaction)
}

func parseTransaction(cfg *configFlags) (*wire.MsgTx, error) {
	transactionHex, err := cfg.transactionHex()
	if err != nil {
		return nil, err
	}
	serializedTx, err := hex.DecodeString(transactionHex)
	if err != nil {
		return nil, errors.Wrap(err, "transaction is not valid HEX")
	}
	return wire.DecodeTransaction(serializedTx)
}

// prevScript returns the script of the outputs being spent: --prevscript, or
// the pay-to-pubkey-hash script of the signing key.
func prevScript(cfg *configFlags, params *chaincfg.Params, key *signingKey) ([]byte, error) {
	if cfg.PrevScript != "" {
		script, err := hex.DecodeString(cfg.PrevScript)
		if err != nil {
			return nil, errors.Wrap(err, "--prevscript is not valid HEX")
		}
		return script, nil
	}

	publicKey, err := key.key.PubKey(key.compress)
	if err != nil {
		return nil, err
	}
	address, err := util.NewAddressPubKeyHashFromPublicKey(publicKey, params)
	if err != nil {
		return nil, err
	}
	log.Infof("Signing as %s", address)
	return txscript.PayToAddrScript(address)
}

func signTransaction(cfg *configFlags, params *chaincfg.Params, transaction *wire.MsgTx,
	key *signingKey) (*wire.MsgTx, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "signTransaction")
	defer onEnd()

	script, err := prevScript(cfg, params, key)
	if err != nil {
		return nil, err
	}

	// The previous output scripts are not part of the raw transaction.
	unsigned := transaction.Copy()
	for _, txIn := range unsigned.TxIn {
		if len(txIn.PrevScriptPubKey) == 0 {
			txIn.PrevScriptPubKey = script
		}
	}

	if cfg.Input == allInputs {
		log.Infof("Signing %d inputs on %s", len(unsigned.TxIn), params.Name)
		return txscript.SignAllInputs(params, unsigned, key.key, key.compress, txscript.SigHashDefault)
	}
	log.Infof("Signing input %d on %s", cfg.Input, params.Name)
	return txscript.SignTxInput(params, unsigned, cfg.Input, key.key, key.compress, txscript.SigHashDefault)
}

func partialSign(cfg *configFlags, params *chaincfg.Params, transaction *wire.MsgTx,
	key *signingKey) ([]byte, error) {

	redeemScript, err := hex.DecodeString(cfg.RedeemScript)
	if err != nil {
		return nil, errors.Wrap(err, "--redeem-script is not valid HEX")
	}
	nRequired, pubKeys, err := txscript.ExtractMultiSigParams(redeemScript)
	if err != nil {
		return nil, err
	}
	log.Infof("Signing input %d for a %d-of-%d redeem script", cfg.Input, nRequired, len(pubKeys))

	return txscript.PartialSign(params, transaction, cfg.Input, key.key, redeemScript, txscript.SigHashDefault)
}

func assembleMultiSig(cfg *configFlags, params *chaincfg.Params, transaction *wire.MsgTx) (*wire.MsgTx, error) {
	redeemScript, err := hex.DecodeString(cfg.RedeemScript)
	if err != nil {
		return nil, errors.Wrap(err, "--redeem-script is not valid HEX")
	}

	signatures := make([][]byte, len(cfg.Signatures))
	for i, signatureHex := range cfg.Signatures {
		signatures[i], err = hex.DecodeString(signatureHex)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d is not valid HEX", i)
		}
	}

	err = txscript.CheckSignatureOrder(params, transaction, cfg.Input, signatures, redeemScript)
	if err != nil {
		return nil, err
	}
	return txscript.AssembleMultiSigScript(transaction, cfg.Input, signatures, redeemScript)
}

func printTransaction(transaction *wire.MsgTx) {
	serializedTransaction, err := transaction.Bytes()
	if err != nil {
		printErrorAndExit(err, "Failed to serialize transaction")
	}
	fmt.Printf("Signed Transaction (hex): %x\n\n", serializedTransaction)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
