package oid_test

import (
	"errors"
	"testing"

	"github.com/vpbank/snmpcodec/asn1"
	"github.com/vpbank/snmpcodec/asn1/oid"
)

// ─────────────────────────────────────────────────────────────────────────────
// Round trip
// ─────────────────────────────────────────────────────────────────────────────

func TestPackDecodeRoundTrip(t *testing.T) {
	cases := [][]uint32{
		{1, 3, 6, 1, 2, 1, 1, 1, 0},
		{2, 5, 1},
		{2, 5, 999999},
		{1, 3, 6, 1, 2, 1, 1, 3, 0},
	}
	for _, ids := range cases {
		raw := oid.Pack(nil, ids)
		decoded := oid.FromBytes(raw)

		var buf [oid.MaxSubIDs]uint32
		got, err := decoded.Decode(buf[:])
		if err != nil {
			t.Fatalf("ids=%v: Decode: %v", ids, err)
		}
		if !equalUint32(got, ids) {
			t.Fatalf("ids=%v: round trip got %v", ids, got)
		}
	}
}

func equalUint32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestPackLargeSubIdentifier checks the base-128 continuation-byte
// encoding of a sub-identifier at the uint32 boundary, where every byte
// needs the continuation bit set except the last.
func TestPackLargeSubIdentifier(t *testing.T) {
	raw := oid.Pack(nil, []uint32{1, 3, 4294967295})
	want := []byte{0x2b, 0x8f, 0xff, 0xff, 0xff, 0x7f}
	if !equalBytes(raw, want) {
		t.Fatalf("got % x, want % x", raw, want)
	}
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Errors and preconditions
// ─────────────────────────────────────────────────────────────────────────────

func TestDecodeRejectsShortInput(t *testing.T) {
	o := oid.FromBytes([]byte{0x2b})
	var buf [4]uint32
	_, err := o.Decode(buf[:])
	if !errors.Is(err, asn1.ErrInvalidLen) {
		t.Fatalf("got %v, want ErrInvalidLen", err)
	}
}

func TestDecodeRejectsDanglingContinuationBit(t *testing.T) {
	// Final byte has its continuation bit set with nothing following.
	o := oid.FromBytes([]byte{0x2b, 0x80})
	var buf [4]uint32
	_, err := o.Decode(buf[:])
	if !errors.Is(err, asn1.ErrParseError) {
		t.Fatalf("got %v, want ErrParseError", err)
	}
}

func TestDecodeRejectsOverflow(t *testing.T) {
	// Five all-ones 7-bit groups (four continuation-flagged 0xff bytes and
	// a final 0x7f, 35 bits) overflow a 32-bit accumulator.
	o := oid.FromBytes([]byte{0x2b, 0xff, 0xff, 0xff, 0xff, 0x7f})
	var buf [4]uint32
	_, err := o.Decode(buf[:])
	if !errors.Is(err, asn1.ErrIntOverflow) {
		t.Fatalf("got %v, want ErrIntOverflow", err)
	}
}

func TestDecodeRejectsTooManySubIdentifiers(t *testing.T) {
	raw := oid.Pack(nil, []uint32{1, 3, 6, 1, 2, 1, 1, 1, 0})
	o := oid.FromBytes(raw)
	var buf [3]uint32
	_, err := o.Decode(buf[:])
	if !errors.Is(err, asn1.ErrEof) {
		t.Fatalf("got %v, want ErrEof", err)
	}
}

func TestPackPanicsOnTooFewSubIdentifiers(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	oid.Pack(nil, []uint32{1})
}

func TestPackPanicsOnInvalidFirstArc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	oid.Pack(nil, []uint32{3, 0})
}

func TestPackPanicsOnSecondArcTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	oid.Pack(nil, []uint32{1, 40})
}

// ─────────────────────────────────────────────────────────────────────────────
// Display
// ─────────────────────────────────────────────────────────────────────────────

func TestStringRendersDottedDecimal(t *testing.T) {
	raw := oid.Pack(nil, []uint32{1, 3, 6, 1, 2, 1, 1, 1, 0})
	got := oid.FromBytes(raw).String()
	want := "1.3.6.1.2.1.1.1.0"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStringFallsBackOnInvalidOid(t *testing.T) {
	got := oid.FromBytes([]byte{0x2b}).String()
	if got == "" || got[0] != '<' {
		t.Fatalf("got %q, want a bracketed diagnostic placeholder", got)
	}
}

// TestEqual checks both the matching and mismatching cases, plus that an
// undecodable OID never reports equal.
func TestEqual(t *testing.T) {
	raw := oid.Pack(nil, []uint32{1, 3, 6, 1, 2, 1, 1, 1, 0})
	o := oid.FromBytes(raw)

	if !o.Equal([]uint32{1, 3, 6, 1, 2, 1, 1, 1, 0}) {
		t.Fatal("expected equal")
	}
	if o.Equal([]uint32{1, 3, 6, 1, 2, 1, 1, 5, 0}) {
		t.Fatal("expected not equal")
	}
	if oid.FromBytes([]byte{0x2b}).Equal([]uint32{1, 3}) {
		t.Fatal("expected undecodable OID to never equal")
	}
}
