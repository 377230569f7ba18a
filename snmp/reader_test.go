package snmp_test

import (
	"errors"
	"testing"

	"github.com/vpbank/snmpcodec/asn1"
	"github.com/vpbank/snmpcodec/snmp"
)

// ─────────────────────────────────────────────────────────────────────────────
// DER strictness
// ─────────────────────────────────────────────────────────────────────────────

func TestReaderNextRejectsMalformedBoolean(t *testing.T) {
	// A bare BOOLEAN TLV with an illegal body octet (0x02 instead of
	// 0x00/0x01). Next() terminates silently on a malformed value rather
	// than erroring — this is the documented best-effort iterator
	// contract, exercised here via direct Reader access instead of Pdu.
	body := []byte{0x01, 0x01, 0x02} // BOOLEAN, length 1, invalid octet
	r := snmp.NewReader(body)
	if _, ok := r.Next(); ok {
		t.Fatal("expected Next to fail on invalid BOOLEAN body")
	}
}

func TestReadLengthRejectsIndefiniteForm(t *testing.T) {
	// 0x30 (SEQUENCE), 0x80 (indefinite length) is BER, not DER.
	body := []byte{0x30, 0x80}
	_, err := snmp.ParsePdu(body)
	if err == nil {
		t.Fatal("expected error for indefinite-length SEQUENCE")
	}
	if !errors.Is(err, asn1.ErrInvalidLen) {
		t.Fatalf("got %v, want ErrInvalidLen", err)
	}
}

func TestReadLengthRejectsReservedByte(t *testing.T) {
	body := []byte{0x30, 0xff}
	_, err := snmp.ParsePdu(body)
	if !errors.Is(err, asn1.ErrInvalidLen) {
		t.Fatalf("got %v, want ErrInvalidLen", err)
	}
}

func TestReadLengthRejectsShortBody(t *testing.T) {
	// Length field declares 10 bytes but only 2 remain.
	body := []byte{0x30, 0x0a, 0x02, 0x01}
	_, err := snmp.ParsePdu(body)
	if !errors.Is(err, asn1.ErrInvalidLen) {
		t.Fatalf("got %v, want ErrInvalidLen", err)
	}
}

func TestDecodeIntegerRejectsOverlongBody(t *testing.T) {
	// A 9-octet INTEGER body cannot fit an int64.
	overlong := append([]byte{0x02, 0x09}, make([]byte, 9)...)
	r := snmp.NewReader(overlong)
	if _, ok := r.Next(); ok {
		t.Fatal("expected Next to fail on a 9-octet INTEGER body")
	}
}

// TestEndOfMibViewRoundTrip checks that the EndOfMibView exception marker
// (which carries no payload) survives a Response build/parse cycle.
func TestEndOfMibViewRoundTrip(t *testing.T) {
	w := snmp.NewWriter()
	snmp.BuildResponse(w, []byte("public"), 1, 0, 0, []snmp.VarbindOut{
		{Oid: []uint32{1, 3, 6, 1, 2, 1, 1, 99, 0}, Value: snmp.NewEndOfMibView()},
	})

	pdu, err := snmp.ParsePdu(w.Bytes())
	if err != nil {
		t.Fatalf("ParsePdu: %v", err)
	}
	vb, ok := pdu.Varbinds.Next()
	if !ok {
		t.Fatal("expected one varbind")
	}
	if vb.Value.Kind != snmp.KindEndOfMibView {
		t.Fatalf("got Kind %s, want EndOfMibView", vb.Value.Kind)
	}
}
