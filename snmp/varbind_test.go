package snmp_test

import (
	"testing"

	"github.com/vpbank/snmpcodec/snmp"
)

func TestVarbindsCloneIsIndependent(t *testing.T) {
	w := snmp.NewWriter()
	snmp.BuildGet(w, []byte("public"), 1, [][]uint32{
		{1, 3, 6, 1, 2, 1, 1, 1, 0},
		{1, 3, 6, 1, 2, 1, 1, 2, 0},
	})
	pdu, err := snmp.ParsePdu(w.Bytes())
	if err != nil {
		t.Fatalf("ParsePdu: %v", err)
	}

	a := pdu.Varbinds.Clone()
	if _, ok := a.Next(); !ok {
		t.Fatal("expected first clone to read one varbind")
	}

	b := pdu.Varbinds.Clone()
	vb, ok := b.Next()
	if !ok {
		t.Fatal("expected second clone, independent of the first, to still start at the beginning")
	}
	if !vb.Name.Equal([]uint32{1, 3, 6, 1, 2, 1, 1, 1, 0}) {
		t.Fatalf("second clone started mid-stream: got %s", vb.Name)
	}
}

func TestVarbindsAllDrainsRemaining(t *testing.T) {
	w := snmp.NewWriter()
	snmp.BuildGet(w, []byte("public"), 1, [][]uint32{
		{1, 3, 6, 1, 2, 1, 1, 1, 0},
		{1, 3, 6, 1, 2, 1, 1, 2, 0},
		{1, 3, 6, 1, 2, 1, 1, 3, 0},
	})
	pdu, err := snmp.ParsePdu(w.Bytes())
	if err != nil {
		t.Fatalf("ParsePdu: %v", err)
	}

	all := pdu.Varbinds.Clone().All()
	if len(all) != 3 {
		t.Fatalf("got %d varbinds, want 3", len(all))
	}
}
