// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestNetworkPrefixesAreDistinct(t *testing.T) {
	seen := make(map[[2]byte]string)
	for _, params := range KnownNets() {
		for _, id := range [][2]byte{params.PubKeyHashAddrID, params.ScriptHashAddrID} {
			if other, ok := seen[id]; ok {
				t.Errorf("%s: address prefix %x already used by %s", params.Name, id, other)
			}
			seen[id] = params.Name
		}
		if params.ForkID != BTCPForkID {
			t.Errorf("%s: fork id %d, want %d", params.Name, params.ForkID, BTCPForkID)
		}
		if params.ForkIDInSigHash {
			t.Errorf("%s: fork id digest augmentation enabled by default", params.Name)
		}
	}
}

func TestWithForkIDInSigHash(t *testing.T) {
	params := MainNetParams.WithForkIDInSigHash(true)
	if !params.ForkIDInSigHash {
		t.Fatalf("copy does not have the flag set")
	}
	if MainNetParams.ForkIDInSigHash {
		t.Fatalf("WithForkIDInSigHash mutated MainNetParams")
	}
	if params.PubKeyHashAddrID != MainNetParams.PubKeyHashAddrID {
		t.Fatalf("copy lost the address prefixes")
	}
}

func TestHDPrivateKeyToPublicKeyID(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
		priv   []byte
		want   []byte
		err    error
	}{
		{
			name:   "mainnet",
			params: &MainNetParams,
			priv:   MainNetParams.HDPrivateKeyID[:],
			want:   MainNetParams.HDPublicKeyID[:],
		},
		{
			name:   "testnet",
			params: &TestNetParams,
			priv:   TestNetParams.HDPrivateKeyID[:],
			want:   TestNetParams.HDPublicKeyID[:],
		},
		{
			name:   "testnet id on mainnet",
			params: &MainNetParams,
			priv:   TestNetParams.HDPrivateKeyID[:],
			err:    ErrUnknownHDKeyID,
		},
		{
			name:   "short id",
			params: &MainNetParams,
			priv:   []byte{0x04, 0x88},
			err:    ErrUnknownHDKeyID,
		},
	}

	for _, test := range tests {
		got, err := test.params.HDPrivateKeyToPublicKeyID(test.priv)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.err)
			continue
		}
		if !bytes.Equal(got, test.want) {
			t.Errorf("%s: got %x, want %x", test.name, got, test.want)
		}
	}
}

func TestParamsByName(t *testing.T) {
	params, err := ParamsByName("testnet")
	if err != nil {
		t.Fatalf("ParamsByName: %v", err)
	}
	if params != &TestNetParams {
		t.Errorf("ParamsByName returned %s", params.Name)
	}
	if _, err := ParamsByName("regtest"); err == nil {
		t.Errorf("ParamsByName accepted an unknown network")
	}
}
