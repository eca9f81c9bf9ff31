package txbuilder

import (
	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/chaincfg/chainhash"
	"github.com/btcprivate/btcptx/txscript"
	"github.com/btcprivate/btcptx/util"
	"github.com/btcprivate/btcptx/wire"
	"github.com/pkg/errors"
)

// PriorOutput is a previous transaction output to be spent, together with the
// script it is locked by, which is needed in order to sign it.
type PriorOutput struct {
	// TxID is the id of the transaction holding the output, in the byte
	// reversed hex form reported by explorers and nodes.
	TxID     string
	Index    uint32
	PkScript []byte
}

// Payment contains a recipient payment details
type Payment struct {
	Address string
	Amount  util.Amount
}

// CreateRawTx creates an unsigned transaction spending priorOutputs to
// payments. Every input carries the script of the output it spends, so the
// result is ready to be signed with txscript.SignTxInput. Whatever is not
// paid out is left to the miner as fee.
func CreateRawTx(params *chaincfg.Params, priorOutputs []*PriorOutput, payments []*Payment) (*wire.MsgTx, error) {
	if len(priorOutputs) == 0 {
		return nil, errors.New("a transaction must spend at least one output")
	}
	if len(payments) == 0 {
		return nil, errors.New("a transaction must have at least one payment")
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for i, priorOutput := range priorOutputs {
		if len(priorOutput.TxID) != chainhash.MaxHashStringSize {
			return nil, errors.Errorf("prior output %d has a transaction id of %d "+
				"characters, want %d", i, len(priorOutput.TxID), chainhash.MaxHashStringSize)
		}
		txID, err := chainhash.NewHashFromStr(priorOutput.TxID)
		if err != nil {
			return nil, errors.Wrapf(err, "prior output %d has an invalid transaction id", i)
		}
		if len(priorOutput.PkScript) == 0 {
			return nil, errors.Errorf("prior output %d has no script", i)
		}
		prevScript := append([]byte(nil), priorOutput.PkScript...)
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(txID, priorOutput.Index), prevScript))
	}

	var total util.Amount
	for i, payment := range payments {
		if payment.Amount > util.MaxSatoshi {
			return nil, errors.Errorf("payment %d of %s is above the maximum of %s",
				i, payment.Amount, util.Amount(util.MaxSatoshi))
		}
		total += payment.Amount
		if total > util.MaxSatoshi {
			return nil, errors.Errorf("total payments exceed the maximum of %s",
				util.Amount(util.MaxSatoshi))
		}

		pkScript, err := txscript.AddressToScript(payment.Address, params)
		if err != nil {
			return nil, errors.Wrapf(err, "payment %d", i)
		}
		tx.AddTxOut(wire.NewTxOut(uint64(payment.Amount), pkScript))
	}

	log.Debugf("Created a %s transaction spending %d outputs to %d payments totalling %s",
		params.Name, len(tx.TxIn), len(tx.TxOut), total)
	return tx, nil
}
