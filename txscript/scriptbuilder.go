// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"fmt"

	"github.com/btcprivate/btcptx/wire"
)

const (
	// defaultScriptAlloc is the default size used for the backing array
	// for a script being built by the ScriptBuilder. The array will
	// dynamically grow as needed, but this figure is intended to provide
	// enough space for the vast majority of scripts without needing to
	// grow the backing array multiple times.
	defaultScriptAlloc = 500

	// maxScriptSize is the largest script the codec can carry.
	maxScriptSize = wire.MaxScriptSize
)

// ErrScriptNotCanonical identifies a non-canonical script. The caller can use
// a type assertion to detect this error type.
type ErrScriptNotCanonical string

// Error implements the error interface.
func (e ErrScriptNotCanonical) Error() string {
	return string(e)
}

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints, and data while respecting canonical encoding. In
// general it does not ensure the script will execute correctly, however any
// data pushes which would exceed the maximum allowed script size will result
// in an error being returned from Script.
//
// For example, the following would build a 2-of-3 multisig script for usage in
// a pay-to-script-hash (although in this situation MultiSigScript() would be a
// better choice to generate the script):
//	builder := txscript.NewScriptBuilder()
//	builder.AddOp(txscript.OP_2).AddData(pubKey1).AddData(pubKey2)
//	builder.AddData(pubKey3).AddOp(txscript.OP_3)
//	builder.AddOp(txscript.OP_CHECKMULTISIG)
//	script, err := builder.Script()
//	if err != nil {
//		// Handle the error.
//		return
//	}
//	fmt.Printf("Final multi-sig script: %x\n", script)
type ScriptBuilder struct {
	script []byte
	err    error
}

// AddOp pushes the passed opcode to the end of the script. The script will
// not be modified if pushing the opcode would cause the script to exceed the
// maximum allowed script size.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(b.script)+1 > maxScriptSize {
		str := fmt.Sprintf("adding an opcode would exceed the maximum "+
			"allowed canonical script length of %d", maxScriptSize)
		b.err = ErrScriptNotCanonical(str)
		return b
	}

	b.script = append(b.script, opcode)
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(b.script)+len(opcodes) > maxScriptSize {
		str := fmt.Sprintf("adding opcodes would exceed the maximum "+
			"allowed canonical script length of %d", maxScriptSize)
		b.err = ErrScriptNotCanonical(str)
		return b
	}

	b.script = append(b.script, opcodes...)
	return b
}

// PushDataPrefixLen returns the number of bytes of the opcode and length
// prefix that push dataLen bytes.
func PushDataPrefixLen(dataLen int) int {
	switch {
	case dataLen <= OP_DATA_75:
		return 1
	case dataLen <= 0xff:
		return 1 + 1
	case dataLen <= 0xffff:
		return 1 + 2
	default:
		return 1 + 4
	}
}

// addData is the internal function that actually pushes the passed data to
// the end of the script. It uses the smallest length prefix able to hold
// the data. No checks are performed.
func (b *ScriptBuilder) addData(data []byte) *ScriptBuilder {
	dataLen := len(data)
	switch {
	case dataLen <= OP_DATA_75:
		b.script = append(b.script, byte(dataLen))
	case dataLen <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(dataLen))
		b.script = append(b.script, OP_PUSHDATA2)
		b.script = append(b.script, buf...)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(dataLen))
		b.script = append(b.script, OP_PUSHDATA4)
		b.script = append(b.script, buf...)
	}

	b.script = append(b.script, data...)
	return b
}

// AddData pushes the passed data to the end of the script. The length prefix
// is always the shortest of a single length byte, OP_PUSHDATA1, OP_PUSHDATA2
// or OP_PUSHDATA4 able to hold len(data); an empty push is OP_0.
//
// The script will not be modified if pushing the data would cause the script
// to exceed the maximum allowed script size.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataSize := PushDataPrefixLen(len(data)) + len(data)
	if len(b.script)+dataSize > maxScriptSize {
		str := fmt.Sprintf("adding %d bytes of data would exceed the "+
			"maximum allowed canonical script length of %d",
			dataSize, maxScriptSize)
		b.err = ErrScriptNotCanonical(str)
		return b
	}

	return b.addData(data)
}

// AddInt64 pushes the passed integer to the end of the script. Values in
// [-1, 16] use the dedicated small integer opcodes; other values are pushed
// as minimally encoded script numbers.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(b.script)+1 > maxScriptSize {
		str := fmt.Sprintf("adding an integer would exceed the "+
			"maximum allow canonical script length of %d",
			maxScriptSize)
		b.err = ErrScriptNotCanonical(str)
		return b
	}

	// Fast path for small integers and OP_1NEGATE.
	if val == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if val == -1 || (val >= 1 && val <= 16) {
		b.script = append(b.script, byte((OP_1-1)+val))
		return b
	}

	return b.AddData(scriptNumBytes(val))
}

// scriptNumBytes returns the minimal little-endian sign-magnitude encoding
// used by script numbers.
func scriptNumBytes(n int64) []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	magnitude := uint64(n)
	if isNegative {
		magnitude = uint64(-n)
	}

	result := make([]byte, 0, 9)
	for magnitude > 0 {
		result = append(result, byte(magnitude&0xff))
		magnitude >>= 8
	}

	// The most significant byte carries the sign bit, so an extra byte is
	// needed when it is already set.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.script = b.script[0:0]
	b.err = nil
	return b
}

// Script returns the currently built script. When any errors occurred while
// building the script, the script will be returned up the point of the first
// error along with the error.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}

// NewScriptBuilder returns a new instance of a script builder. See
// ScriptBuilder for details.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		script: make([]byte, 0, defaultScriptAlloc),
	}
}
