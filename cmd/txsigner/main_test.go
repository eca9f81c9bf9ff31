package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/txscript"
	"github.com/btcprivate/btcptx/wire"
)

const (
	keyOneHex = "0000000000000000000000000000000000000000000000000000000000000001"

	unsignedTxHex = "01000000013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
		"0000000000ffffffff0100f2052a010000001976a914751e76e8199196d454941c45d1b3a323f1433bd688ac00000000"

	signedTxHex = "01000000013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a" +
		"000000006b48304502210095ab7f10b12336b40ce2702aa740b5941aa0f2049f4762462804d34e3d040083" +
		"0220503c128a883fc7b76a47873cbc741a444a5363f5d35f2d12ba534e7bf379e41341" +
		"210279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"ffffffff0100f2052a010000001976a914751e76e8199196d454941c45d1b3a323f1433bd688ac00000000"

	twoOfThreeRedeemScriptHex = "52" +
		"210279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"2102c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5" +
		"2102f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9" +
		"53ae"
)

func TestParsePrivateKey(t *testing.T) {
	tests := []struct {
		name         string
		privateKey   string
		params       *chaincfg.Params
		wantCompress bool
		valid        bool
	}{
		{"hex", keyOneHex, &chaincfg.MainNetParams, false, true},
		{"mainnet wif", "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf", &chaincfg.MainNetParams, false, true},
		{"mainnet compressed wif", "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn", &chaincfg.MainNetParams, true, true},
		{"testnet compressed wif", "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA", &chaincfg.TestNetParams, true, true},
		{"testnet wif on mainnet", "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA", &chaincfg.MainNetParams, false, false},
		{"zero hex key", "0000000000000000000000000000000000000000000000000000000000000000", &chaincfg.MainNetParams, false, false},
		{"garbage", "not a key", &chaincfg.MainNetParams, false, false},
	}

	for _, test := range tests {
		key, compress, err := parsePrivateKey(test.privateKey, test.params)
		if !test.valid {
			if err == nil {
				t.Errorf("%s: parsePrivateKey succeeded", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: parsePrivateKey: %v", test.name, err)
			continue
		}
		if hex.EncodeToString(key.Serialize()) != keyOneHex {
			t.Errorf("%s: got key %x", test.name, key.Serialize())
		}
		if compress != test.wantCompress {
			t.Errorf("%s: got compress %t, want %t", test.name, compress, test.wantCompress)
		}
	}
}

func keyOne(t *testing.T, compress bool) *signingKey {
	key, _, err := parsePrivateKey(keyOneHex, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("parsePrivateKey: %v", err)
	}
	return &signingKey{key: key, compress: compress}
}

func TestSignTransaction(t *testing.T) {
	params := &chaincfg.MainNetParams

	for _, cfg := range []*configFlags{
		{Transaction: unsignedTxHex, Input: allInputs},
		{Transaction: unsignedTxHex, Input: 0},
		{Transaction: unsignedTxHex, Input: allInputs,
			PrevScript: "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"},
	} {
		transaction, err := parseTransaction(cfg)
		if err != nil {
			t.Fatalf("parseTransaction: %v", err)
		}
		signed, err := signTransaction(cfg, params, transaction, keyOne(t, true))
		if err != nil {
			t.Fatalf("signTransaction: %v", err)
		}
		signedBytes, err := signed.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		if hex.EncodeToString(signedBytes) != signedTxHex {
			t.Errorf("signTransaction: got %x", signedBytes)
		}
	}

	cfg := &configFlags{Transaction: unsignedTxHex, Input: 1}
	transaction, err := parseTransaction(cfg)
	if err != nil {
		t.Fatalf("parseTransaction: %v", err)
	}
	if _, err := signTransaction(cfg, params, transaction, keyOne(t, true)); err == nil {
		t.Errorf("signTransaction signed a missing input")
	}
}

func TestTransactionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.hex")
	err := os.WriteFile(path, []byte(unsignedTxHex+"\n"), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	transaction, err := parseTransaction(&configFlags{TransactionFile: path})
	if err != nil {
		t.Fatalf("parseTransaction: %v", err)
	}
	if len(transaction.TxIn) != 1 || len(transaction.TxOut) != 1 {
		t.Errorf("unexpected transaction read from file: %d inputs, %d outputs",
			len(transaction.TxIn), len(transaction.TxOut))
	}

	if _, err := parseTransaction(&configFlags{Transaction: "0100"}); err == nil {
		t.Errorf("parseTransaction accepted a truncated transaction")
	}
	if _, err := parseTransaction(&configFlags{Transaction: "xyz"}); err == nil {
		t.Errorf("parseTransaction accepted invalid hex")
	}
}

func TestPartialSignAndAssemble(t *testing.T) {
	params := &chaincfg.MainNetParams
	base := configFlags{Transaction: unsignedTxHex, Input: 0, RedeemScript: twoOfThreeRedeemScriptHex}
	transaction, err := parseTransaction(&base)
	if err != nil {
		t.Fatalf("parseTransaction: %v", err)
	}

	var signatures []string
	for _, n := range []byte{1, 2} {
		keyBytes := make([]byte, 32)
		keyBytes[31] = n
		key, _, err := parsePrivateKey(hex.EncodeToString(keyBytes), params)
		if err != nil {
			t.Fatalf("parsePrivateKey: %v", err)
		}
		signature, err := partialSign(&base, params, transaction, &signingKey{key: key})
		if err != nil {
			t.Fatalf("partialSign: %v", err)
		}
		signatures = append(signatures, hex.EncodeToString(signature))
	}

	cfg := base
	cfg.Signatures = signatures
	assembled, err := assembleMultiSig(&cfg, params, transaction)
	if err != nil {
		t.Fatalf("assembleMultiSig: %v", err)
	}
	nRequired, _, _ := txscript.ExtractMultiSigParams(mustDecodeHex(t, twoOfThreeRedeemScriptHex))
	if nRequired != 2 {
		t.Fatalf("unexpected redeem script")
	}
	sigScript := assembled.TxIn[0].SignatureScript
	if sigScript[0] != txscript.OP_0 || !bytes.HasSuffix(sigScript, mustDecodeHex(t, twoOfThreeRedeemScriptHex)) {
		t.Errorf("unexpected signature script %x", sigScript)
	}

	// Out of order signatures are refused.
	cfg.Signatures = []string{signatures[1], signatures[0]}
	if _, err := assembleMultiSig(&cfg, params, transaction); err == nil {
		t.Errorf("assembleMultiSig accepted signatures out of key order")
	}

	if _, err := wire.DecodeTransaction(mustSerialize(t, assembled)); err != nil {
		t.Errorf("assembled transaction does not decode: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  configFlags
	}{
		{"no transaction", configFlags{Input: allInputs}},
		{"two transactions", configFlags{Transaction: "00", TransactionFile: "tx.hex", Input: allInputs}},
		{"key and mnemonic", configFlags{Transaction: "00", PrivateKey: keyOneHex, Mnemonic: true, Input: allInputs}},
		{"negative input", configFlags{Transaction: "00", Input: -2}},
		{"redeem script without input", configFlags{Transaction: "00", RedeemScript: "00", Input: allInputs}},
		{"signature without redeem script", configFlags{Transaction: "00", Signatures: []string{"00"}, Input: 0}},
	}

	for _, test := range tests {
		if err := test.cfg.validate(); err == nil {
			t.Errorf("%s: validate succeeded", test.name)
		}
	}

	valid := configFlags{Transaction: "00", Input: allInputs}
	if err := valid.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func mustDecodeHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	return b
}

func mustSerialize(t *testing.T, tx *wire.MsgTx) []byte {
	b, err := tx.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	return b
}
