// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// These constants are the values of the opcodes the builders emit or
// recognize.
const (
	OP_0                   = 0x00 // 0
	OP_FALSE               = 0x00 // 0 - AKA OP_0
	OP_DATA_1              = 0x01 // 1
	OP_DATA_20             = 0x14 // 20
	OP_DATA_33             = 0x21 // 33
	OP_DATA_65             = 0x41 // 65
	OP_DATA_75             = 0x4b // 75
	OP_PUSHDATA1           = 0x4c // 76
	OP_PUSHDATA2           = 0x4d // 77
	OP_PUSHDATA4           = 0x4e // 78
	OP_1NEGATE             = 0x4f // 79
	OP_RESERVED            = 0x50 // 80
	OP_1                   = 0x51 // 81 - AKA OP_TRUE
	OP_TRUE                = 0x51 // 81
	OP_2                   = 0x52 // 82
	OP_3                   = 0x53 // 83
	OP_4                   = 0x54 // 84
	OP_5                   = 0x55 // 85
	OP_6                   = 0x56 // 86
	OP_7                   = 0x57 // 87
	OP_8                   = 0x58 // 88
	OP_9                   = 0x59 // 89
	OP_10                  = 0x5a // 90
	OP_11                  = 0x5b // 91
	OP_12                  = 0x5c // 92
	OP_13                  = 0x5d // 93
	OP_14                  = 0x5e // 94
	OP_15                  = 0x5f // 95
	OP_16                  = 0x60 // 96
	OP_NOP                 = 0x61 // 97
	OP_VER                 = 0x62 // 98
	OP_IF                  = 0x63 // 99
	OP_NOTIF               = 0x64 // 100
	OP_VERIF               = 0x65 // 101
	OP_VERNOTIF            = 0x66 // 102
	OP_ELSE                = 0x67 // 103
	OP_ENDIF               = 0x68 // 104
	OP_VERIFY              = 0x69 // 105
	OP_RETURN              = 0x6a // 106
	OP_DUP                 = 0x76 // 118
	OP_NIP                 = 0x77 // 119
	OP_OVER                = 0x78 // 120
	OP_EQUAL               = 0x87 // 135
	OP_EQUALVERIFY         = 0x88 // 136
	OP_RESERVED1           = 0x89 // 137
	OP_RESERVED2           = 0x8a // 138
	OP_HASH160             = 0xa9 // 169
	OP_CHECKSIG            = 0xac // 172
	OP_CHECKSIGVERIFY      = 0xad // 173
	OP_CHECKMULTISIG       = 0xae // 174
	OP_CHECKMULTISIGVERIFY = 0xaf // 175
)

// opcodeNames maps the opcodes above to the names used in disassembly.
var opcodeNames = map[byte]string{
	OP_0:                   "OP_0",
	OP_PUSHDATA1:           "OP_PUSHDATA1",
	OP_PUSHDATA2:           "OP_PUSHDATA2",
	OP_PUSHDATA4:           "OP_PUSHDATA4",
	OP_1NEGATE:             "OP_1NEGATE",
	OP_RESERVED:            "OP_RESERVED",
	OP_NOP:                 "OP_NOP",
	OP_VER:                 "OP_VER",
	OP_IF:                  "OP_IF",
	OP_NOTIF:               "OP_NOTIF",
	OP_VERIF:               "OP_VERIF",
	OP_VERNOTIF:            "OP_VERNOTIF",
	OP_ELSE:                "OP_ELSE",
	OP_ENDIF:               "OP_ENDIF",
	OP_VERIFY:              "OP_VERIFY",
	OP_RETURN:              "OP_RETURN",
	OP_DUP:                 "OP_DUP",
	OP_NIP:                 "OP_NIP",
	OP_OVER:                "OP_OVER",
	OP_EQUAL:               "OP_EQUAL",
	OP_EQUALVERIFY:         "OP_EQUALVERIFY",
	OP_RESERVED1:           "OP_RESERVED1",
	OP_RESERVED2:           "OP_RESERVED2",
	OP_HASH160:             "OP_HASH160",
	OP_CHECKSIG:            "OP_CHECKSIG",
	OP_CHECKSIGVERIFY:      "OP_CHECKSIGVERIFY",
	OP_CHECKMULTISIG:       "OP_CHECKMULTISIG",
	OP_CHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",
}

// parsedOpcode is an opcode together with the data it pushes, if any.
type parsedOpcode struct {
	opcode byte
	data   []byte
}

// isPush returns whether the opcode pushes data read from the script.
func (pop *parsedOpcode) isPush() bool {
	return pop.opcode <= OP_PUSHDATA4
}

// parseScript splits script into opcodes. Data pushes reference the backing
// array of script.
func parseScript(script []byte) ([]parsedOpcode, error) {
	var pops []parsedOpcode
	for i := 0; i < len(script); {
		op := script[i]
		i++

		var dataLen int
		switch {
		case op == OP_0:
		case op <= OP_DATA_75:
			dataLen = int(op)
		case op == OP_PUSHDATA1:
			if len(script)-i < 1 {
				return nil, errors.Errorf("OP_PUSHDATA1 at offset %d has no length", i-1)
			}
			dataLen = int(script[i])
			i++
		case op == OP_PUSHDATA2:
			if len(script)-i < 2 {
				return nil, errors.Errorf("OP_PUSHDATA2 at offset %d has a truncated length", i-1)
			}
			dataLen = int(binary.LittleEndian.Uint16(script[i:]))
			i += 2
		case op == OP_PUSHDATA4:
			if len(script)-i < 4 {
				return nil, errors.Errorf("OP_PUSHDATA4 at offset %d has a truncated length", i-1)
			}
			length := binary.LittleEndian.Uint32(script[i:])
			if uint64(length) > uint64(len(script)) {
				return nil, errors.Errorf("OP_PUSHDATA4 at offset %d pushes %d bytes "+
					"but the script is %d bytes", i-1, length, len(script))
			}
			dataLen = int(length)
			i += 4
		default:
			pops = append(pops, parsedOpcode{opcode: op})
			continue
		}

		if len(script)-i < dataLen {
			return nil, errors.Errorf("opcode %#02x requires %d bytes, but script "+
				"has only %d remaining", op, dataLen, len(script)-i)
		}
		pops = append(pops, parsedOpcode{opcode: op, data: script[i : i+dataLen]})
		i += dataLen
	}
	return pops, nil
}

// isSmallInt returns whether the opcode is OP_0 or one of OP_1 through OP_16.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// asSmallInt returns the number pushed by a small integer opcode.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}
	return int(op - (OP_1 - 1))
}

func opcodeName(op byte) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	if op >= OP_1 && op <= OP_16 {
		return fmt.Sprintf("OP_%d", asSmallInt(op))
	}
	return fmt.Sprintf("OP_UNKNOWN%d", op)
}

// DisasmString formats a script as a one line disassembly: pushed data is
// printed as hex and other opcodes by name. An error is returned for a script
// that does not parse.
func DisasmString(script []byte) (string, error) {
	pops, err := parseScript(script)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(pops))
	for _, pop := range pops {
		if pop.isPush() && pop.opcode != OP_0 {
			parts = append(parts, hex.EncodeToString(pop.data))
			continue
		}
		parts = append(parts, opcodeName(pop.opcode))
	}
	return strings.Join(parts, " "), nil
}
