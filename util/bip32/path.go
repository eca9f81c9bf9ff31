package bip32

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parsePath parses a private derivation path such as "m/44'/183'/0'/0/0".
// Hardened indexes are marked with ' or h.
func parsePath(pathString string) ([]uint32, error) {
	parts := strings.Split(pathString, "/")
	if parts[0] != "m" {
		return nil, errors.Errorf("%s is an invalid derivation path: it must start with m", pathString)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "%s is an invalid derivation path", pathString)
		}
		if index >= hardenedIndexStart {
			return nil, errors.Errorf("%s is an invalid derivation path: index %d is out of range",
				pathString, index)
		}
		if hardened {
			index += hardenedIndexStart
		}
		indexes = append(indexes, uint32(index))
	}

	return indexes, nil
}
