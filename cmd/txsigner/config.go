package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/btcprivate/btcptx/infrastructure/config"
	"github.com/btcprivate/btcptx/util/bip32"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename = "txsigner.log"
	defaultLogLevel    = "info"
	allInputs          = -1
)

type configFlags struct {
	Transaction     string   `long:"transaction" short:"t" description:"Unsigned transaction in HEX format"`
	TransactionFile string   `long:"transaction-file" short:"F" description:"File containing the unsigned transaction in HEX format"`
	PrivateKey      string   `long:"private-key" short:"p" description:"Private key in WIF or HEX format (read from the terminal when neither it nor --mnemonic is given)"`
	Mnemonic        bool     `long:"mnemonic" short:"m" description:"Read a BIP39 mnemonic from the terminal and sign with the key at --derivation-path"`
	DerivationPath  string   `long:"derivation-path" description:"BIP32 derivation path of the signing key when --mnemonic is used"`
	PrevScript      string   `long:"prevscript" description:"HEX script of the outputs being spent; defaults to the pay-to-pubkey-hash script of the signing key"`
	Input           int      `long:"input" short:"i" description:"Index of the input to sign; all inputs are signed when omitted"`
	Compress        bool     `long:"compress" description:"Put the compressed public key in signature scripts"`
	RedeemScript    string   `long:"redeem-script" description:"HEX multisig redeem script; prints the partial signature of --input"`
	Signatures      []string `long:"signature" description:"HEX partial signature, in redeem script key order; with --redeem-script assembles input --input"`
	LogDir          string   `long:"logdir" description:"Directory to log output"`
	LogLevel        string   `long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		Input:          allInputs,
		DerivationPath: bip32.DefaultPath,
		LogLevel:       defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	return cfg, nil
}

func (cfg *configFlags) validate() error {
	if cfg.Transaction == "" && cfg.TransactionFile == "" {
		return errors.Errorf("Either --transaction or --transaction-file is required")
	}
	if cfg.Transaction != "" && cfg.TransactionFile != "" {
		return errors.Errorf("Both --transaction and --transaction-file cannot be passed at the same time")
	}
	if cfg.PrivateKey != "" && cfg.Mnemonic {
		return errors.Errorf("Both --private-key and --mnemonic cannot be passed at the same time")
	}
	if cfg.Input < allInputs {
		return errors.Errorf("--input must not be negative")
	}
	if cfg.RedeemScript != "" && cfg.Input == allInputs {
		return errors.Errorf("--redeem-script requires --input")
	}
	if len(cfg.Signatures) > 0 && cfg.RedeemScript == "" {
		return errors.Errorf("--signature requires --redeem-script")
	}
	return nil
}

// transactionHex returns the transaction given on the command line or read
// from --transaction-file.
func (cfg *configFlags) transactionHex() (string, error) {
	if cfg.TransactionFile == "" {
		return strings.TrimSpace(cfg.Transaction), nil
	}
	transactionHexBytes, err := os.ReadFile(cfg.TransactionFile)
	if err != nil {
		return "", errors.Wrapf(err, "Could not read hex from %s", cfg.TransactionFile)
	}
	return strings.TrimSpace(string(transactionHexBytes)), nil
}

func (cfg *configFlags) logFile() string {
	if cfg.LogDir == "" {
		return ""
	}
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}
