// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/util"
	"github.com/pkg/errors"
)

func TestReplayScriptTemplates(t *testing.T) {
	t.Parallel()

	pkhScript, err := PayToPubKeyHashReplayScript(keyOneHash160)
	if err != nil {
		t.Fatalf("PayToPubKeyHashReplayScript: %v", err)
	}
	if !bytes.Equal(pkhScript, keyOneP2PKHScript) {
		t.Errorf("PayToPubKeyHashReplayScript: got %x, want %x", pkhScript, keyOneP2PKHScript)
	}

	shScript, err := PayToScriptHashReplayScript(keyOneHash160)
	if err != nil {
		t.Fatalf("PayToScriptHashReplayScript: %v", err)
	}
	want := hexToBytes("a914751e76e8199196d454941c45d1b3a323f1433bd687")
	if !bytes.Equal(shScript, want) {
		t.Errorf("PayToScriptHashReplayScript: got %x, want %x", shScript, want)
	}

	if _, err := PayToPubKeyHashReplayScript(keyOneHash160[:19]); err == nil {
		t.Errorf("PayToPubKeyHashReplayScript accepted a 19 byte hash")
	}
	if _, err := PayToScriptHashReplayScript(append(keyOneHash160, 0x00)); err == nil {
		t.Errorf("PayToScriptHashReplayScript accepted a 21 byte hash")
	}
}

// TestAddressToScript checks that the template is picked by the version
// prefix of the address, for each network.
func TestAddressToScript(t *testing.T) {
	t.Parallel()

	pkhScript := keyOneP2PKHScript
	shScript := hexToBytes("a914751e76e8199196d454941c45d1b3a323f1433bd687")
	multiSigShScript := hexToBytes("a91415fc0754e73eb85d1cbce08786fadb7320ecb8dc87")

	tests := []struct {
		name    string
		address string
		params  *chaincfg.Params
		want    []byte
		class   ScriptClass
	}{
		{"mainnet pubkey hash", "b1F9UELjc7DtsGbWZAvYJRMPfkP9dJrKnMV", &chaincfg.MainNetParams, pkhScript, PubKeyHashReplayTy},
		{"mainnet script hash", "bxmni7KsN67qn8QkWYpWHLexEbzhoSZ6Rwk", &chaincfg.MainNetParams, shScript, ScriptHashReplayTy},
		{"mainnet multisig", "bxd7gfTXTuaNfGmahdEuRmriKdVCqfKKSrB", &chaincfg.MainNetParams, multiSigShScript, ScriptHashReplayTy},
		{"testnet pubkey hash", "n1pXiqfmptXHM9Tn31j95zLMBaw2daYaVi5", &chaincfg.TestNetParams, pkhScript, PubKeyHashReplayTy},
		{"testnet script hash", "nxYVkkSK1T4JWNQjpLnSRwPNBBY4vK3puaW", &chaincfg.TestNetParams, shScript, ScriptHashReplayTy},
		{"testnet multisig", "nxPpjJZy7GWqPWma1RCqaNb8GD2ZxQTT299", &chaincfg.TestNetParams, multiSigShScript, ScriptHashReplayTy},
	}

	for _, test := range tests {
		script, err := AddressToScript(test.address, test.params)
		if err != nil {
			t.Errorf("%s: AddressToScript: %v", test.name, err)
			continue
		}
		if !bytes.Equal(script, test.want) {
			t.Errorf("%s: AddressToScript: got %x, want %x", test.name, script, test.want)
		}
		if class := GetScriptClass(script); class != test.class {
			t.Errorf("%s: GetScriptClass: got %s, want %s", test.name, class, test.class)
		}

		addr, err := ExtractScriptAddress(script, test.params)
		if err != nil {
			t.Errorf("%s: ExtractScriptAddress: %v", test.name, err)
			continue
		}
		if addr.EncodeAddress() != test.address {
			t.Errorf("%s: ExtractScriptAddress: got %s, want %s", test.name, addr, test.address)
		}
	}
}

// TestAddressToScriptUsesPrefixTable swaps the two prefixes of the main
// network: the same address string must then route to the other template.
func TestAddressToScriptUsesPrefixTable(t *testing.T) {
	t.Parallel()

	swapped := chaincfg.MainNetParams
	swapped.Name = "swapped"
	swapped.PubKeyHashAddrID, swapped.ScriptHashAddrID =
		chaincfg.MainNetParams.ScriptHashAddrID, chaincfg.MainNetParams.PubKeyHashAddrID

	script, err := AddressToScript("b1F9UELjc7DtsGbWZAvYJRMPfkP9dJrKnMV", &swapped)
	if err != nil {
		t.Fatalf("AddressToScript: %v", err)
	}
	if GetScriptClass(script) != ScriptHashReplayTy {
		t.Errorf("address with the script hash prefix routed to %s", GetScriptClass(script))
	}

	script, err = AddressToScript("bxmni7KsN67qn8QkWYpWHLexEbzhoSZ6Rwk", &swapped)
	if err != nil {
		t.Fatalf("AddressToScript: %v", err)
	}
	if GetScriptClass(script) != PubKeyHashReplayTy {
		t.Errorf("address with the pubkey hash prefix routed to %s", GetScriptClass(script))
	}
}

func TestAddressToScriptErrors(t *testing.T) {
	t.Parallel()

	_, err := AddressToScript("b1F9UELjc7DtsGbWZAvYJRMPfkP9dJrKnMV", &chaincfg.TestNetParams)
	if !errors.Is(err, util.ErrUnknownAddressType) {
		t.Errorf("mainnet address on testnet: got %v, want ErrUnknownAddressType", err)
	}

	_, err = AddressToScript("b1F9UELjc7DtsGbWZAvYJRMPfkP9dJrKnMW", &chaincfg.MainNetParams)
	if !errors.Is(err, util.ErrChecksumMismatch) {
		t.Errorf("corrupted address: got %v, want ErrChecksumMismatch", err)
	}

	if _, err := PayToAddrScript(nil); err == nil {
		t.Errorf("PayToAddrScript accepted a nil address")
	}
	var nilPubKeyHash *util.AddressPubKeyHash
	if _, err := PayToAddrScript(nilPubKeyHash); err == nil {
		t.Errorf("PayToAddrScript accepted a nil *AddressPubKeyHash")
	}

	if _, err := ExtractScriptAddress(twoOfThreeRedeemScript, &chaincfg.MainNetParams); err == nil {
		t.Errorf("ExtractScriptAddress accepted a multisig script")
	}
}

func TestMultiSigScript(t *testing.T) {
	t.Parallel()

	script, err := MultiSigScript(compressedPubKeys, 2)
	if err != nil {
		t.Fatalf("MultiSigScript: %v", err)
	}
	if !bytes.Equal(script, twoOfThreeRedeemScript) {
		t.Fatalf("MultiSigScript: got %x, want %x", script, twoOfThreeRedeemScript)
	}
	if GetScriptClass(script) != MultiSigTy {
		t.Errorf("GetScriptClass: got %s, want %s", GetScriptClass(script), MultiSigTy)
	}

	addr, err := util.NewAddressScriptHash(script, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("NewAddressScriptHash: %v", err)
	}
	if addr.EncodeAddress() != "bxd7gfTXTuaNfGmahdEuRmriKdVCqfKKSrB" {
		t.Errorf("redeem script address: got %s", addr)
	}

	nRequired, pubKeys, err := ExtractMultiSigParams(script)
	if err != nil {
		t.Fatalf("ExtractMultiSigParams: %v", err)
	}
	if nRequired != 2 || len(pubKeys) != 3 {
		t.Fatalf("ExtractMultiSigParams: got %d of %d", nRequired, len(pubKeys))
	}
	for i, pubKey := range pubKeys {
		if !bytes.Equal(pubKey, compressedPubKeys[i]) {
			t.Errorf("ExtractMultiSigParams: key %d is %x, want %x", i, pubKey, compressedPubKeys[i])
		}
	}
}

func TestMultiSigScriptErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pubKeys   [][]byte
		nRequired int
	}{
		{"no keys", nil, 1},
		{"zero required", compressedPubKeys, 0},
		{"more required than keys", compressedPubKeys, 4},
		{"invalid key", [][]byte{compressedPubKeys[0], {0x02, 0x01}}, 1},
		{"too many keys", make([][]byte, MaxPubKeysPerMultiSig+1), 1},
	}

	for _, test := range tests {
		if _, err := MultiSigScript(test.pubKeys, test.nRequired); err == nil {
			t.Errorf("%s: MultiSigScript succeeded", test.name)
		}
	}
}

func TestExtractMultiSigParamsErrors(t *testing.T) {
	t.Parallel()

	key := compressedPubKeys[0]
	build := func(f func(b *ScriptBuilder)) []byte {
		builder := NewScriptBuilder()
		f(builder)
		script, err := builder.Script()
		if err != nil {
			t.Fatalf("Script: %v", err)
		}
		return script
	}

	tests := []struct {
		name   string
		script []byte
	}{
		{"pubkey hash script", keyOneP2PKHScript},
		{"empty", nil},
		{"truncated", twoOfThreeRedeemScript[:len(twoOfThreeRedeemScript)-3]},
		{"key count mismatch", build(func(b *ScriptBuilder) {
			b.AddOp(OP_1).AddData(key).AddOp(OP_2).AddOp(OP_CHECKMULTISIG)
		})},
		{"more required than keys", build(func(b *ScriptBuilder) {
			b.AddOp(OP_2).AddData(key).AddOp(OP_1).AddOp(OP_CHECKMULTISIG)
		})},
		{"zero required", build(func(b *ScriptBuilder) {
			b.AddOp(OP_0).AddData(key).AddOp(OP_1).AddOp(OP_CHECKMULTISIG)
		})},
		{"not a key push", build(func(b *ScriptBuilder) {
			b.AddOp(OP_1).AddData(keyOneHash160).AddOp(OP_1).AddOp(OP_CHECKMULTISIG)
		})},
		{"verify variant", build(func(b *ScriptBuilder) {
			b.AddOp(OP_1).AddData(key).AddOp(OP_1).AddOp(OP_CHECKMULTISIGVERIFY)
		})},
	}

	for _, test := range tests {
		if _, _, err := ExtractMultiSigParams(test.script); err == nil {
			t.Errorf("%s: ExtractMultiSigParams succeeded", test.name)
		}
		if GetScriptClass(test.script) == MultiSigTy {
			t.Errorf("%s: GetScriptClass returned multisig", test.name)
		}
	}
}

func TestScriptClassString(t *testing.T) {
	t.Parallel()

	if MultiSigTy.String() != "multisig" {
		t.Errorf("MultiSigTy.String(): got %s", MultiSigTy)
	}
	if ScriptClass(200).String() != "Invalid" {
		t.Errorf("ScriptClass(200).String(): got %s", ScriptClass(200))
	}
}
