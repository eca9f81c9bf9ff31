package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/btcprivate/btcptx/util"
	"github.com/btcprivate/btcptx/util/bip32"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// signingKey is the key resolved from the command line together with the
// public key format it asks for.
type signingKey struct {
	key      *ecc.PrivateKey
	compress bool
}

// resolveSigningKey returns the key given with --private-key or --mnemonic,
// prompting for it on the terminal when it is not on the command line.
func resolveSigningKey(cfg *configFlags, params *chaincfg.Params) (*signingKey, error) {
	if cfg.Mnemonic {
		mnemonic, err := getPassword("Mnemonic: ")
		if err != nil {
			return nil, err
		}
		passphrase, err := getPassword("Mnemonic passphrase (may be empty): ")
		if err != nil {
			return nil, err
		}
		key, err := bip32.PrivateKeyFromMnemonic(strings.TrimSpace(string(mnemonic)),
			string(passphrase), cfg.DerivationPath, params)
		if err != nil {
			return nil, err
		}
		return &signingKey{key: key, compress: true}, nil
	}

	privateKey := cfg.PrivateKey
	if privateKey == "" {
		entered, err := getPassword("Private key: ")
		if err != nil {
			return nil, err
		}
		privateKey = string(entered)
	}

	key, compress, err := parsePrivateKey(strings.TrimSpace(privateKey), params)
	if err != nil {
		return nil, err
	}
	return &signingKey{key: key, compress: compress || cfg.Compress}, nil
}

// parsePrivateKey accepts a WIF private key of the network described by
// params, or a 32 byte HEX private key. The second return value is whether
// a WIF key asks for a compressed public key.
func parsePrivateKey(privateKey string, params *chaincfg.Params) (*ecc.PrivateKey, bool, error) {
	if len(privateKey) == 2*ecc.PrivKeyBytesLen {
		if privateKeyBytes, err := hex.DecodeString(privateKey); err == nil {
			key, err := ecc.ParsePrivateKey(privateKeyBytes)
			return key, false, err
		}
	}

	wif, err := util.DecodeWIF(privateKey)
	if err != nil {
		return nil, false, errors.Wrap(err, "private key is neither WIF nor HEX")
	}
	if !wif.IsForNet(params) {
		return nil, false, errors.Errorf("private key is not a %s key", params.Name)
	}
	key, err := ecc.ParsePrivateKey(wif.PrivKey)
	if err != nil {
		return nil, false, err
	}
	return key, wif.CompressPubKey, nil
}

// getPassword reads a secret from the terminal without echoing it.
func getPassword(prompt string) ([]byte, error) {
	stdin := int(syscall.Stdin)
	if !term.IsTerminal(stdin) {
		return nil, errors.New("the secret must be entered on a terminal")
	}

	initialTermState, err := term.GetState(stdin)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Restore the terminal in the event of an interrupt.
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, os.Interrupt)
	defer func() {
		signal.Stop(c)
		close(done)
	}()
	go func() {
		select {
		case <-c:
			_ = term.Restore(stdin, initialTermState)
			os.Exit(1)
		case <-done:
		}
	}()

	fmt.Fprint(os.Stderr, prompt)
	p, err := term.ReadPassword(stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}
