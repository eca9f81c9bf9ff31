// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import "testing"

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		valid    bool
		expected Amount
	}{
		// Positive tests.
		{name: "zero", in: "0", valid: true, expected: 0},
		{name: "one hundred", in: "100", valid: true, expected: 100 * SatoshiPerBitcoin},
		{name: "fraction", in: "0.01234567", valid: true, expected: 1234567},
		{name: "leading dot", in: ".5", valid: true, expected: 50000000},
		{name: "trailing dot", in: "50.", valid: true, expected: 5000000000},
		{name: "max", in: "21000000", valid: true, expected: MaxSatoshi},
		{name: "above 2^53 satoshi", in: "20999999.99999999", valid: true, expected: MaxSatoshi - 1},

		// Negative tests.
		{name: "empty", in: ""},
		{name: "dot", in: "."},
		{name: "too many decimals", in: "1.000000001"},
		{name: "negative", in: "-1"},
		{name: "plus sign", in: "+1"},
		{name: "exceeds max", in: "21000000.00000001"},
		{name: "exceeds uint64", in: "184467440737095516160"},
		{name: "letters", in: "1e8"},
	}

	for _, test := range tests {
		a, err := ParseAmount(test.in)
		switch {
		case test.valid && err != nil:
			t.Errorf("%v: Positive test ParseAmount failed with: %v", test.name, err)
			continue
		case !test.valid && err == nil:
			t.Errorf("%v: Negative test ParseAmount succeeded (value %v) when should fail", test.name, a)
			continue
		}

		if a != test.expected {
			t.Errorf("%v: Created amount %v does not match expected %v", test.name, a, test.expected)
		}
	}
}

func TestAmountString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Amount
		want string
	}{
		{0, "0.00000000 BTCP"},
		{1, "0.00000001 BTCP"},
		{5000000000, "50.00000000 BTCP"},
		{MaxSatoshi, "21000000.00000000 BTCP"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String(%d): got %s, want %s", uint64(test.in), got, test.want)
		}
	}
}
