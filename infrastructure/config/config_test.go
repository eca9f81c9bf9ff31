package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcprivate/btcptx/chaincfg"
)

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		name            string
		flags           NetworkFlags
		wantName        string
		wantForkIDInSig bool
	}{
		{"default", NetworkFlags{}, "mainnet", false},
		{"testnet", NetworkFlags{Testnet: true}, "testnet", false},
		{"mainnet fork id", NetworkFlags{ForkIDSigHash: true}, "mainnet", true},
		{"testnet fork id", NetworkFlags{Testnet: true, ForkIDSigHash: true}, "testnet", true},
	}

	for _, test := range tests {
		networkFlags := test.flags
		err := networkFlags.ResolveNetwork(nil)
		if err != nil {
			t.Errorf("%s: ResolveNetwork: %v", test.name, err)
			continue
		}
		params := networkFlags.NetParams()
		if params.Name != test.wantName || params.ForkIDInSigHash != test.wantForkIDInSig {
			t.Errorf("%s: got %s with ForkIDInSigHash %t", test.name, params.Name, params.ForkIDInSigHash)
		}
		if params == &chaincfg.MainNetParams || params == &chaincfg.TestNetParams {
			t.Errorf("%s: ResolveNetwork returned the package level params", test.name)
		}
	}

	if chaincfg.MainNetParams.ForkIDInSigHash || chaincfg.TestNetParams.ForkIDInSigHash {
		t.Errorf("ResolveNetwork modified the package level params")
	}
}

func writeOverrideFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "params.json")
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOverrideParamsFile(t *testing.T) {
	path := writeOverrideFile(t, `{"scriptHashAddrId": "1a00", "forkId": 7, "forkIdInSigHash": true}`)

	networkFlags := NetworkFlags{Testnet: true, OverrideParamsFile: path}
	err := networkFlags.ResolveNetwork(nil)
	if err != nil {
		t.Fatalf("ResolveNetwork: %v", err)
	}
	params := networkFlags.NetParams()
	if params.ScriptHashAddrID != [2]byte{0x1a, 0x00} {
		t.Errorf("ScriptHashAddrID: got %x", params.ScriptHashAddrID)
	}
	if params.PubKeyHashAddrID != chaincfg.TestNetParams.PubKeyHashAddrID {
		t.Errorf("PubKeyHashAddrID changed to %x", params.PubKeyHashAddrID)
	}
	if params.ForkID != 7 || !params.ForkIDInSigHash {
		t.Errorf("fork id settings: got %d, %t", params.ForkID, params.ForkIDInSigHash)
	}
	if chaincfg.TestNetParams.ScriptHashAddrID != [2]byte{0x19, 0xe0} || chaincfg.TestNetParams.ForkID != chaincfg.BTCPForkID {
		t.Errorf("the override modified TestNetParams")
	}
}

func TestOverrideParamsFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		testnet bool
		content string
	}{
		{"mainnet", false, `{"forkId": 7}`},
		{"unknown field", true, `{"genesisHash": "00"}`},
		{"bad prefix", true, `{"pubKeyHashAddrId": "zz"}`},
		{"short prefix", true, `{"pubKeyHashAddrId": "19"}`},
		{"same prefixes", true, `{"pubKeyHashAddrId": "19e0"}`},
		{"not json", true, `forkId = 7`},
	}

	for _, test := range tests {
		networkFlags := NetworkFlags{
			Testnet:            test.testnet,
			OverrideParamsFile: writeOverrideFile(t, test.content),
		}
		if err := networkFlags.ResolveNetwork(nil); err == nil {
			t.Errorf("%s: ResolveNetwork succeeded", test.name)
		}
	}

	networkFlags := NetworkFlags{Testnet: true, OverrideParamsFile: filepath.Join(t.TempDir(), "missing.json")}
	if err := networkFlags.ResolveNetwork(nil); err == nil {
		t.Errorf("ResolveNetwork accepted a missing file")
	}
}
