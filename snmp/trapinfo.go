package snmp

import (
	"fmt"

	"github.com/vpbank/snmpcodec/asn1"
	"github.com/vpbank/snmpcodec/asn1/oid"
)

// sysUpTimeOid and snmpTrapOidOid are the two varbinds RFC 3416 §4.2.6
// requires as the first two entries of every v2c Trap/InformRequest PDU
// (grounded on snmp/trap/handler.go's parsev2Info in the teacher repo,
// narrowed to the v2c-only case since this codec never handles v1 traps).
var (
	sysUpTimeOid   = []uint32{1, 3, 6, 1, 2, 1, 1, 3, 0}
	snmpTrapOidOid = []uint32{1, 3, 6, 1, 6, 3, 1, 1, 4, 1, 0}
)

// ErrNotATrap is returned by TrapInfo when the PDU's message type is
// neither Trap nor InformRequest.
const ErrNotATrap asn1.Error = "snmp: pdu is not a trap or inform"

// ErrMalformedTrap is returned when a Trap/InformRequest PDU's first two
// varbinds are not sysUpTime.0 followed by snmpTrapOID.0.
const ErrMalformedTrap asn1.Error = "snmp: malformed trap varbinds"

// TrapInfo extracts the sysUpTime and snmpTrapOID values every v2c
// Trap/InformRequest PDU carries as its first two varbinds, returning the
// remaining varbinds as a fresh iterator. It reads a Clone of pdu.Varbinds,
// so the caller's own iteration of the full list is unaffected.
func TrapInfo(pdu Pdu) (uptime uint32, trapOID oid.ObjectIdentifier, rest Varbinds, err error) {
	if pdu.Type != asn1.Trap && pdu.Type != asn1.InformRequest {
		return 0, oid.ObjectIdentifier{}, Varbinds{}, fmt.Errorf("%s: %w", pdu.Type, ErrNotATrap)
	}

	vbs := pdu.Varbinds.Clone()

	first, ok := vbs.Next()
	if !ok || !first.Name.Equal(sysUpTimeOid) || first.Value.Kind != KindTimeticks {
		return 0, oid.ObjectIdentifier{}, Varbinds{}, ErrMalformedTrap
	}

	second, ok := vbs.Next()
	if !ok || !second.Name.Equal(snmpTrapOidOid) || second.Value.Kind != KindObjectIdentifier {
		return 0, oid.ObjectIdentifier{}, Varbinds{}, ErrMalformedTrap
	}

	return first.Value.AsUnsigned32(), second.Value.AsObjectIdentifier(), vbs, nil
}
