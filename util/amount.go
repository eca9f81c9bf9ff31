// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// SatoshiPerBitcent is the number of satoshi in one bitcoin cent.
	SatoshiPerBitcent = 1000000

	// SatoshiPerBitcoin is the number of satoshi in one coin.
	SatoshiPerBitcoin = 100000000

	// MaxSatoshi is the maximum transaction amount allowed in satoshi.
	MaxSatoshi = 21000000 * SatoshiPerBitcoin

	// decimals is the number of fractional digits of one coin.
	decimals = 8
)

// Amount represents the base coin monetary unit (colloquially referred
// to as a `Satoshi'). Amounts are whole integers and never pass through a
// floating point value.
type Amount uint64

// ParseAmount parses a decimal coin amount such as "50" or "0.00012" into
// an Amount. At most eight fractional digits are accepted and the result may
// not exceed MaxSatoshi.
func ParseAmount(s string) (Amount, error) {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, errors.Errorf("invalid amount %q", s)
	}
	if len(frac) > decimals {
		return 0, errors.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", decimals-len(frac))

	coins, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", s)
	}
	satoshi, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", s)
	}
	if coins > MaxSatoshi/SatoshiPerBitcoin {
		return 0, errors.Errorf("amount %q exceeds the max amount", s)
	}

	amount := coins*SatoshiPerBitcoin + satoshi
	if amount > MaxSatoshi {
		return 0, errors.Errorf("amount %q exceeds the max amount", s)
	}
	return Amount(amount), nil
}

// ToBTCP returns the whole and fractional coin parts of the amount.
func (a Amount) ToBTCP() (whole uint64, frac uint64) {
	return uint64(a) / SatoshiPerBitcoin, uint64(a) % SatoshiPerBitcoin
}

// String is the equivalent of calling Format with eight decimals followed
// by the unit.
func (a Amount) String() string {
	whole, frac := a.ToBTCP()
	fracStr := strconv.FormatUint(frac+SatoshiPerBitcoin, 10)[1:]
	return strconv.FormatUint(whole, 10) + "." + fracStr + " BTCP"
}
