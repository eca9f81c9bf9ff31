// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/btcprivate/btcptx/util/binaryserializer"
	"github.com/pkg/errors"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// MaxMessagePayload is the maximum bytes a raw transaction can be.
const MaxMessagePayload = 1024 * 1024 * 32 // 32MB

// MaxScriptSize is the largest script the codec reads or writes.
const MaxScriptSize = MaxMessagePayload

// varBytesPreallocLimit is the largest declared length that is allocated up
// front. Longer fields are read incrementally so a truncated input can't force
// a large allocation.
const varBytesPreallocLimit = 64 * 1024

// littleEndian is a convenience variable since binary.LittleEndian is
// quite long.
var littleEndian = binary.LittleEndian

// errNonCanonicalVarInt is the common format string used for non-canonically
// encoded variable length integer errors.
var errNonCanonicalVarInt = "non-canonical varint %x - discriminant %x must " +
	"encode a value greater than %x"

// ReadVarInt reads a variable length integer from r and returns it as a uint64.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binaryserializer.Uint8(r)
	if err != nil {
		return 0, readError("ReadVarInt", "varint discriminant", err)
	}

	var rv uint64
	switch discriminant {
	case 0xff:
		sv, err := binaryserializer.Uint64(r)
		if err != nil {
			return 0, readError("ReadVarInt", "8-byte varint", err)
		}
		rv = sv

		// The encoding is not canonical if the value could have been
		// encoded using fewer bytes.
		min := uint64(0x100000000)
		if rv < min {
			return 0, formatError("ReadVarInt", fmt.Sprintf(
				errNonCanonicalVarInt, rv, discriminant, min))
		}

	case 0xfe:
		sv, err := binaryserializer.Uint32(r)
		if err != nil {
			return 0, readError("ReadVarInt", "4-byte varint", err)
		}
		rv = uint64(sv)

		min := uint64(0x10000)
		if rv < min {
			return 0, formatError("ReadVarInt", fmt.Sprintf(
				errNonCanonicalVarInt, rv, discriminant, min))
		}

	case 0xfd:
		sv, err := binaryserializer.Uint16(r)
		if err != nil {
			return 0, readError("ReadVarInt", "2-byte varint", err)
		}
		rv = uint64(sv)

		min := uint64(0xfd)
		if rv < min {
			return 0, formatError("ReadVarInt", fmt.Sprintf(
				errNonCanonicalVarInt, rv, discriminant, min))
		}

	default:
		rv = uint64(discriminant)
	}

	return rv, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binaryserializer.PutUint8(w, uint8(val))
	}

	if val <= math.MaxUint16 {
		var buf [3]byte
		buf[0] = 0xfd
		littleEndian.PutUint16(buf[1:], uint16(val))
		_, err := w.Write(buf[:])
		return errors.WithStack(err)
	}

	if val <= math.MaxUint32 {
		var buf [5]byte
		buf[0] = 0xfe
		littleEndian.PutUint32(buf[1:], uint32(val))
		_, err := w.Write(buf[:])
		return errors.WithStack(err)
	}

	var buf [9]byte
	buf[0] = 0xff
	littleEndian.PutUint64(buf[1:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// ReadVarBytes reads a variable length byte array. A byte array is encoded
// as a varInt containing the length of the array followed by the bytes
// themselves. A FormatError is returned if the length is greater than
// maxAllowed or if r ends before the declared length. The fieldName
// parameter is only used for the error message.
func ReadVarBytes(r io.Reader, maxAllowed uint32, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// Prevent byte array larger than the max message size. It would
	// be possible to cause memory exhaustion and panics without a sane
	// upper bound on this count.
	if count > uint64(maxAllowed) {
		str := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
		return nil, formatError("ReadVarBytes", str)
	}

	if count == 0 {
		return nil, nil
	}

	if count <= varBytesPreallocLimit {
		b := make([]byte, count)
		_, err = io.ReadFull(r, b)
		if err != nil {
			return nil, readError("ReadVarBytes", fieldName, err)
		}
		return b, nil
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(count))
	if err != nil {
		if errors.Is(err, io.EOF) && n > 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, readError("ReadVarBytes", fieldName, err)
	}
	return buf.Bytes(), nil
}

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves. An
// EncodingError is returned for arrays longer than MaxScriptSize.
func WriteVarBytes(w io.Writer, b []byte) error {
	if len(b) > MaxScriptSize {
		return encodingError("WriteVarBytes", fmt.Sprintf(
			"byte array of length %d exceeds the max allowed size %d",
			len(b), MaxScriptSize))
	}

	err := WriteVarInt(w, uint64(len(b)))
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return errors.WithStack(err)
}
