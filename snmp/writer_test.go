package snmp_test

import (
	"math"
	"testing"

	"github.com/vpbank/snmpcodec/snmp"
)

// ─────────────────────────────────────────────────────────────────────────────
// Integer encoding
// ─────────────────────────────────────────────────────────────────────────────

// TestReqIdRoundTrip exercises the int64 body encoder indirectly through a
// full PDU build/parse cycle across the int32 extremes and values around
// the one-/two-octet boundaries on both sides of zero.
func TestReqIdRoundTrip(t *testing.T) {
	values := []int64{
		math.MinInt32, math.MinInt32 + 1, -65537, -65536, -129, -128, -1, 0, 1,
		127, 128, 65535, 65536, math.MaxInt32,
	}
	for _, n := range values {
		w := snmp.NewWriter()
		snmp.BuildGet(w, []byte("public"), int32(n), [][]uint32{{1, 3, 6, 1, 2, 1, 1, 1, 0}})

		pdu, err := snmp.ParsePdu(w.Bytes())
		if err != nil {
			t.Fatalf("n=%d: ParsePdu: %v", n, err)
		}
		if int64(pdu.ReqId) != n {
			t.Fatalf("n=%d: got reqId %d", n, pdu.ReqId)
		}
	}
}

// TestCounter64RoundTrip checks the unsigned 64-bit path, including values
// that need a guard byte because their top bit would otherwise look
// negative, and math.MaxUint64, which is carried as the int64 bit pattern
// -1 (a one-octet 0xff body).
func TestCounter64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 256, 1 << 40, math.MaxUint32, math.MaxUint64}
	for _, n := range values {
		w := snmp.NewWriter()
		snmp.BuildResponse(w, []byte("public"), 1, 0, 0, []snmp.VarbindOut{
			{Oid: []uint32{1, 3, 6, 1, 2, 1, 2, 2, 1, 10, 1}, Value: snmp.NewCounter64(n)},
		})

		pdu, err := snmp.ParsePdu(w.Bytes())
		if err != nil {
			t.Fatalf("n=%d: ParsePdu: %v", n, err)
		}
		vb, ok := pdu.Varbinds.Next()
		if !ok {
			t.Fatalf("n=%d: expected one varbind", n)
		}
		if vb.Value.AsUnsigned64() != n {
			t.Fatalf("n=%d: got %d", n, vb.Value.AsUnsigned64())
		}
	}
}

// TestWriterPanicsOnOverflow checks the documented programmer-error
// contract: pushing more than the writer's fixed capacity panics rather
// than silently truncating or growing.
func TestWriterPanicsOnOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on buffer overflow")
		}
	}()
	w := snmp.NewWriterSize(4)
	oids := make([][]uint32, 1)
	oids[0] = []uint32{1, 3, 6, 1, 2, 1, 1, 1, 0}
	snmp.BuildGet(w, []byte("a longer community string than fits"), 1, oids)
}

// TestResetReusesBuffer checks that Reset lets a Writer be reused for a
// second, differently-shaped message without leftover bytes.
func TestResetReusesBuffer(t *testing.T) {
	w := snmp.NewWriter()
	snmp.BuildGet(w, []byte("public"), 1, [][]uint32{{1, 3, 6, 1, 2, 1, 1, 1, 0}})
	first := append([]byte(nil), w.Bytes()...)

	snmp.BuildGetNext(w, []byte("private"), 2, [][]uint32{{1, 3, 6, 1, 2, 1, 1, 2, 0}})
	second := w.Bytes()

	if len(first) == len(second) {
		t.Fatalf("expected different lengths, both got %d", len(first))
	}
	pdu, err := snmp.ParsePdu(second)
	if err != nil {
		t.Fatalf("ParsePdu: %v", err)
	}
	if string(pdu.Community) != "private" {
		t.Fatalf("got community %q, want %q", pdu.Community, "private")
	}
}
