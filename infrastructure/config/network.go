package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	ForkIDSigHash      bool   `long:"forkid-sighash" description:"Mix the fork id into the hash type appended to the signature hash preimage"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides network params (allowed only on testnet)"`

	ActiveNetParams *chaincfg.Params
}

type overrideParamsConfig struct {
	PubKeyHashAddrID *string `json:"pubKeyHashAddrId"`
	ScriptHashAddrID *string `json:"scriptHashAddrId"`
	PrivateKeyID     *uint8  `json:"privateKeyId"`
	ForkID           *uint32 `json:"forkId"`
	ForkIDInSigHash  *bool   `json:"forkIdInSigHash"`
}

// ResolveNetwork parses the network command line arguments and sets
// ActiveNetParams accordingly. The default network is mainnet. The params
// are copied before any flag changes them, so the package level params of
// chaincfg are never modified.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	params := chaincfg.MainNetParams
	if networkFlags.Testnet {
		params = chaincfg.TestNetParams
	}
	networkFlags.ActiveNetParams = &params

	err := networkFlags.overrideParams()
	if err != nil {
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	if networkFlags.ForkIDSigHash {
		networkFlags.ActiveNetParams = networkFlags.ActiveNetParams.WithForkIDInSigHash(true)
	}
	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	if !networkFlags.Testnet {
		return errors.Errorf("override-params-file is allowed only when using testnet")
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse %s", networkFlags.OverrideParamsFile)
	}

	params := networkFlags.ActiveNetParams
	if config.PubKeyHashAddrID != nil {
		params.PubKeyHashAddrID, err = parseAddrID(*config.PubKeyHashAddrID)
		if err != nil {
			return err
		}
	}

	if config.ScriptHashAddrID != nil {
		params.ScriptHashAddrID, err = parseAddrID(*config.ScriptHashAddrID)
		if err != nil {
			return err
		}
	}

	if params.PubKeyHashAddrID == params.ScriptHashAddrID {
		return errors.Errorf("pubKeyHashAddrId and scriptHashAddrId must differ")
	}

	if config.PrivateKeyID != nil {
		params.PrivateKeyID = *config.PrivateKeyID
	}

	if config.ForkID != nil {
		params.ForkID = *config.ForkID
	}

	if config.ForkIDInSigHash != nil {
		params.ForkIDInSigHash = *config.ForkIDInSigHash
	}

	return nil
}

func parseAddrID(s string) ([2]byte, error) {
	var id [2]byte
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, errors.Wrapf(err, "couldn't decode address prefix %s", s)
	}
	if len(decoded) != len(id) {
		return id, errors.Errorf("address prefix %s must be %d bytes", s, len(id))
	}
	copy(id[:], decoded)
	return id, nil
}
