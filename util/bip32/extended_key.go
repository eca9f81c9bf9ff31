package bip32

import (
	"encoding/binary"

	"github.com/btcprivate/btcptx/chaincfg"
	"github.com/btcprivate/btcptx/ecc"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

const (
	versionSerializationLen     = 4
	depthSerializationLen       = 1
	fingerprintSerializationLen = 4
	childNumberSerializationLen = 4
	chainCodeSerializationLen   = 32
	keySerializationLen         = 33
)

// extendedKeySerializationLen excludes the checksum, which base58-check
// handles.
const extendedKeySerializationLen = versionSerializationLen +
	depthSerializationLen +
	fingerprintSerializationLen +
	childNumberSerializationLen +
	chainCodeSerializationLen +
	keySerializationLen

// ExtendedKey is a BIP32 extended private key.
type ExtendedKey struct {
	privateKey        *btcec.PrivateKey
	Version           [4]byte
	Depth             uint8
	ParentFingerprint [4]byte
	ChildNumber       uint32
	ChainCode         [32]byte
}

// PrivateKey returns the signing key of extKey.
func (extKey *ExtendedKey) PrivateKey() (*ecc.PrivateKey, error) {
	return ecc.ParsePrivateKey(extKey.privateKey.Serialize())
}

// String returns the base58-check encoded extended private key.
func (extKey *ExtendedKey) String() string {
	var key [keySerializationLen]byte
	copy(key[1:], extKey.privateKey.Serialize())
	return extKey.serialize(extKey.Version, key[:])
}

// PublicString returns the base58-check encoded extended public key of
// extKey. params maps the private version to its public counterpart.
func (extKey *ExtendedKey) PublicString(params *chaincfg.Params) (string, error) {
	publicVersion, err := params.HDPrivateKeyToPublicKeyID(extKey.Version[:])
	if err != nil {
		return "", err
	}

	var version [4]byte
	copy(version[:], publicVersion)
	return extKey.serialize(version, extKey.privateKey.PubKey().SerializeCompressed()), nil
}

func (extKey *ExtendedKey) serialize(version [4]byte, key []byte) string {
	serialized := make([]byte, 0, extendedKeySerializationLen)
	serialized = append(serialized, version[:]...)
	serialized = append(serialized, extKey.Depth)
	serialized = append(serialized, extKey.ParentFingerprint[:]...)
	serialized = append(serialized, serializeUint32(extKey.ChildNumber)...)
	serialized = append(serialized, extKey.ChainCode[:]...)
	serialized = append(serialized, key...)
	return base58.CheckEncode(serialized[1:], serialized[0])
}

// DeserializeExtendedPrivateKey decodes a base58-check encoded extended
// private key of the network described by params.
func DeserializeExtendedPrivateKey(extPrvString string, params *chaincfg.Params) (*ExtendedKey, error) {
	decoded, first, err := base58.CheckDecode(extPrvString)
	if err != nil {
		return nil, errors.Wrap(err, "invalid extended key encoding")
	}
	serialized := append([]byte{first}, decoded...)
	if len(serialized) != extendedKeySerializationLen {
		return nil, errors.Errorf("key length must be %d bytes but got %d",
			extendedKeySerializationLen, len(serialized))
	}

	extKey := &ExtendedKey{}
	offset := 0
	copy(extKey.Version[:], serialized[offset:])
	offset += versionSerializationLen
	if extKey.Version != params.HDPrivateKeyID {
		return nil, errors.Wrapf(chaincfg.ErrUnknownHDKeyID,
			"version %x is not a %s extended private key", extKey.Version, params.Name)
	}

	extKey.Depth = serialized[offset]
	offset += depthSerializationLen
	copy(extKey.ParentFingerprint[:], serialized[offset:])
	offset += fingerprintSerializationLen
	extKey.ChildNumber = binary.BigEndian.Uint32(serialized[offset:])
	offset += childNumberSerializationLen
	copy(extKey.ChainCode[:], serialized[offset:])
	offset += chainCodeSerializationLen

	if serialized[offset] != 0 {
		return nil, errors.Errorf("expected 0 padding for private key but got %d", serialized[offset])
	}
	extKey.privateKey, err = privateKeyFromScalarBytes(serialized[offset+1:])
	if err != nil {
		return nil, err
	}

	return extKey, nil
}
