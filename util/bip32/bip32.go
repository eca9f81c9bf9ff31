package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"hash"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/util"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

const hardenedIndexStart = 0x80000000

// ErrInvalidChild is returned when a derived child key is invalid, which
// happens for fewer than 1 in 2^127 indexes.
var ErrInvalidChild = errors.New("the extended key at this index is invalid")

// NewMaster returns a new master key based on the given seed, versioned for
// params.
func NewMaster(seed []byte, params *chaincfg.Params) (*ExtendedKey, error) {
	mac := newHMACWriter([]byte("Bitcoin seed"))
	mac.InfallibleWrite(seed)
	I := mac.Sum(nil)

	privateKey, err := privateKeyFromScalarBytes(I[:32])
	if err != nil {
		return nil, err
	}

	extKey := &ExtendedKey{
		privateKey: privateKey,
		Version:    params.HDPrivateKeyID,
	}
	copy(extKey.ChainCode[:], I[32:])
	return extKey, nil
}

// NewMasterWithPath returns a new master key based on the given seed, with a
// derivation to the given path.
func NewMasterWithPath(seed []byte, params *chaincfg.Params, pathString string) (*ExtendedKey, error) {
	masterKey, err := NewMaster(seed, params)
	if err != nil {
		return nil, err
	}

	return masterKey.Path(pathString)
}

func isHardened(i uint32) bool {
	return i >= hardenedIndexStart
}

// Child returns the private child key at index i. Indexes from 2^31 up are
// hardened.
func (extKey *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	mac := newHMACWriter(extKey.ChainCode[:])
	if isHardened(i) {
		mac.InfallibleWrite([]byte{0x00})
		mac.InfallibleWrite(extKey.privateKey.Serialize())
	} else {
		mac.InfallibleWrite(extKey.privateKey.PubKey().SerializeCompressed())
	}
	mac.InfallibleWrite(serializeUint32(i))
	I := mac.Sum(nil)

	var tweak btcec.ModNScalar
	if overflow := tweak.SetByteSlice(I[:32]); overflow {
		return nil, ErrInvalidChild
	}
	tweak.Add(&extKey.privateKey.Key)
	if tweak.IsZero() {
		return nil, ErrInvalidChild
	}

	childExt := &ExtendedKey{
		privateKey:        btcec.PrivKeyFromScalar(&tweak),
		Version:           extKey.Version,
		Depth:             extKey.Depth + 1,
		ParentFingerprint: extKey.fingerprint(),
		ChildNumber:       i,
	}
	copy(childExt.ChainCode[:], I[32:])
	return childExt, nil
}

// Path derives the descendant of extKey at pathString, e.g. "m/44'/183'/0'/0/0".
func (extKey *ExtendedKey) Path(pathString string) (*ExtendedKey, error) {
	indexes, err := parsePath(pathString)
	if err != nil {
		return nil, err
	}

	descendantExtKey := extKey
	for _, index := range indexes {
		descendantExtKey, err = descendantExtKey.Child(index)
		if err != nil {
			return nil, err
		}
	}

	return descendantExtKey, nil
}

func (extKey *ExtendedKey) fingerprint() [4]byte {
	hash := util.Hash160(extKey.privateKey.PubKey().SerializeCompressed())
	var fingerprint [4]byte
	copy(fingerprint[:], hash[:4])
	return fingerprint
}

func privateKeyFromScalarBytes(b []byte) (*btcec.PrivateKey, error) {
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, errors.New("invalid extended private key")
	}
	return btcec.PrivKeyFromScalar(&scalar), nil
}

func serializeUint32(v uint32) []byte {
	serialized := make([]byte, 4)
	binary.BigEndian.PutUint32(serialized, v)
	return serialized
}

func newHMACWriter(key []byte) hmacWriter {
	return hmacWriter{
		Hash: hmac.New(sha512.New, key),
	}
}

type hmacWriter struct {
	hash.Hash
}

func (hw hmacWriter) InfallibleWrite(p []byte) {
	_, err := hw.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "writing to hmac should never fail"))
	}
}
