// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/btcprivate/btcptx/chaincfg/chainhash"
	"github.com/btcprivate/btcptx/util/binaryserializer"
	"github.com/pkg/errors"
)

const (
	// TxVersion is the version of newly built transactions.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// defaultTxInOutAlloc is the default size used for the backing array for
	// transaction inputs and outputs. The array will dynamically grow as needed,
	// but this figure is intended to provide enough space for the number of
	// inputs and outputs in a typical transaction without needing to grow the
	// backing array multiple times.
	defaultTxInOutAlloc = 15

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint.Hash + PreviousOutPoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + chainhash.HashSize

	// maxTxInPerMessage is the maximum number of transactions inputs that
	// a transaction which fits into a message could possibly have.
	maxTxInPerMessage = (MaxMessagePayload / minTxInPayload) + 1

	// MinTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for PkScript length 1 byte.
	MinTxOutPayload = 9

	// maxTxOutPerMessage is the maximum number of transactions outputs that
	// a transaction which fits into a message could possibly have.
	maxTxOutPerMessage = (MaxMessagePayload / MinTxOutPayload) + 1
)

// OutPoint defines a data type that is used to track previous transaction
// outputs. Hash holds the referenced transaction hash in wire byte order.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new transaction outpoint point with the provided
// hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxIn defines a transaction input.
//
// PrevScriptPubKey is the locking script of the output being spent. It is
// carried along for signing only and is never serialized.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
	PrevScriptPubKey []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input.
func (t *TxIn) SerializeSize() int {
	// Outpoint Hash 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// NewTxIn returns a new transaction input with the provided previous outpoint
// point, the locking script it spends and an empty signature script. The
// sequence defaults to MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, prevScriptPubKey []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		Sequence:         MaxTxInSequenceNum,
		PrevScriptPubKey: prevScriptPubKey,
	}
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// NewTxOut returns a new transaction output with the provided transaction
// value and public key script.
func NewTxOut(value uint64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// MsgTx represents a raw transaction.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime int32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// TxHash generates the hash for the transaction: the double sha256 of its
// serialization.
func (msg *MsgTx) TxHash() (*chainhash.Hash, error) {
	writer := chainhash.NewDoubleHashWriter()
	err := msg.Serialize(writer)
	if err != nil {
		return nil, err
	}
	hash := writer.Finalize()
	return &hash, nil
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	// Deep copy the old TxIn data.
	for _, oldTxIn := range msg.TxIn {
		newTxIn := TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  cloneBytes(oldTxIn.SignatureScript),
			Sequence:         oldTxIn.Sequence,
			PrevScriptPubKey: cloneBytes(oldTxIn.PrevScriptPubKey),
		}
		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}

	// Deep copy the old TxOut data.
	for _, oldTxOut := range msg.TxOut {
		newTxOut := TxOut{
			Value:    oldTxOut.Value,
			PkScript: cloneBytes(oldTxOut.PkScript),
		}
		newTx.TxOut = append(newTx.TxOut, &newTxOut)
	}

	return &newTx
}

// cloneBytes returns a copy of b, preserving nil.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	newBytes := make([]byte, len(b))
	copy(newBytes, b)
	return newBytes
}

// Deserialize decodes a raw transaction from r into the receiver. The
// receiver is only written once the whole transaction decoded successfully;
// on error it is left untouched. A FormatError is returned when r is shorter
// than any field it declares.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	version, err := binaryserializer.Int32(r)
	if err != nil {
		return readError("MsgTx.Deserialize", "version", err)
	}

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more input transactions than could possibly fit into a
	// message. It would be possible to cause memory exhaustion and panics
	// without a sane upper bound on this count.
	if count > uint64(maxTxInPerMessage) {
		str := fmt.Sprintf("too many input transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxInPerMessage)
		return formatError("MsgTx.Deserialize", str)
	}

	txIns := make([]*TxIn, 0, minCount(count, defaultTxInOutAlloc))
	for i := uint64(0); i < count; i++ {
		ti := &TxIn{}
		err = readTxIn(r, ti)
		if err != nil {
			return err
		}
		txIns = append(txIns, ti)
	}

	count, err = ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more output transactions than could possibly fit into a
	// message.
	if count > uint64(maxTxOutPerMessage) {
		str := fmt.Sprintf("too many output transactions to fit into "+
			"max message size [count %d, max %d]", count,
			maxTxOutPerMessage)
		return formatError("MsgTx.Deserialize", str)
	}

	txOuts := make([]*TxOut, 0, minCount(count, defaultTxInOutAlloc))
	for i := uint64(0); i < count; i++ {
		to := &TxOut{}
		err = readTxOut(r, to)
		if err != nil {
			return err
		}
		txOuts = append(txOuts, to)
	}

	lockTime, err := binaryserializer.Int32(r)
	if err != nil {
		return readError("MsgTx.Deserialize", "lock time", err)
	}

	*msg = MsgTx{
		Version:  version,
		TxIn:     txIns,
		TxOut:    txOuts,
		LockTime: lockTime,
	}
	return nil
}

func minCount(count uint64, limit int) int {
	if count < uint64(limit) {
		return int(count)
	}
	return limit
}

// DecodeTransaction decodes a raw transaction. Bytes left over after the
// lock time are rejected with a FormatError.
func DecodeTransaction(serialized []byte) (*MsgTx, error) {
	r := bytes.NewReader(serialized)
	var msg MsgTx
	err := msg.Deserialize(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, formatError("DecodeTransaction",
			fmt.Sprintf("%d trailing bytes after lock time", r.Len()))
	}
	return &msg, nil
}

// Serialize encodes the transaction to w in the raw transaction format. An
// EncodingError is returned when a script is too large to be encoded.
func (msg *MsgTx) Serialize(w io.Writer) error {
	err := binaryserializer.PutInt32(w, msg.Version)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}

	for _, ti := range msg.TxIn {
		err = writeTxIn(w, ti)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}

	for _, to := range msg.TxOut {
		err = writeTxOut(w, to)
		if err != nil {
			return err
		}
	}

	return binaryserializer.PutInt32(w, msg.LockTime)
}

// Bytes returns the serialized transaction.
func (msg *MsgTx) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	err := msg.Serialize(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}

	return n
}

// NewMsgTx returns a new transaction with the given version, no inputs or
// outputs and a zero lock time.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// readOutPoint reads the next sequence of bytes from r as an OutPoint.
func readOutPoint(r io.Reader, op *OutPoint) error {
	_, err := io.ReadFull(r, op.Hash[:])
	if err != nil {
		return readError("readOutPoint", "previous outpoint hash", err)
	}

	op.Index, err = binaryserializer.Uint32(r)
	if err != nil {
		return readError("readOutPoint", "previous outpoint index", err)
	}
	return nil
}

// writeOutPoint encodes op to w.
func writeOutPoint(w io.Writer, op *OutPoint) error {
	_, err := w.Write(op.Hash[:])
	if err != nil {
		return errors.WithStack(err)
	}

	return binaryserializer.PutUint32(w, op.Index)
}

// readTxIn reads the next sequence of bytes from r as a transaction input.
func readTxIn(r io.Reader, ti *TxIn) error {
	err := readOutPoint(r, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = ReadVarBytes(r, MaxScriptSize, "transaction input signature script")
	if err != nil {
		return err
	}

	ti.Sequence, err = binaryserializer.Uint32(r)
	if err != nil {
		return readError("readTxIn", "sequence", err)
	}
	return nil
}

// writeTxIn encodes ti to w. PrevScriptPubKey is not part of the encoding.
func writeTxIn(w io.Writer, ti *TxIn) error {
	err := writeOutPoint(w, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(w, ti.Sequence)
}

// readTxOut reads the next sequence of bytes from r as a transaction output.
func readTxOut(r io.Reader, to *TxOut) error {
	value, err := binaryserializer.Uint64(r)
	if err != nil {
		return readError("readTxOut", "value", err)
	}
	to.Value = value

	to.PkScript, err = ReadVarBytes(r, MaxScriptSize, "transaction output public key script")
	return err
}

// writeTxOut encodes to into the raw transaction format to w.
func writeTxOut(w io.Writer, to *TxOut) error {
	err := binaryserializer.PutUint64(w, to.Value)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, to.PkScript)
}
