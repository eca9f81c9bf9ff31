package bip32

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// DefaultPath is the BIP44 path of the first external address of the first
// account, with coin type 183.
const DefaultPath = "m/44'/183'/0'/0/0"

// ExtendedKeyFromMnemonic returns the extended key at path of the BIP39
// mnemonic protected by passphrase.
func ExtendedKeyFromMnemonic(mnemonic, passphrase, path string, params *chaincfg.Params) (*ExtendedKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}

	return NewMasterWithPath(seed, params, path)
}

// PrivateKeyFromMnemonic returns the signing key at path of the BIP39
// mnemonic protected by passphrase.
func PrivateKeyFromMnemonic(mnemonic, passphrase, path string, params *chaincfg.Params) (*ecc.PrivateKey, error) {
	extKey, err := ExtendedKeyFromMnemonic(mnemonic, passphrase, path, params)
	if err != nil {
		return nil, err
	}

	return extKey.PrivateKey()
}
