package snmp

import "github.com/vpbank/snmpcodec/asn1"

// PDU-level error kinds, layered on top of asn1.Error so both satisfy the
// same comparable Error type and work uniformly with errors.Is.
const (
	// ErrUnsupportedVersion is returned when a PDU's version field is not 1
	// (SNMPv2c).
	ErrUnsupportedVersion asn1.Error = "snmp: unsupported version"

	// ErrValueOutOfRange is returned when reqId, errorStatus, or errorIndex
	// falls outside its permitted sub-range of a signed 32-bit integer.
	ErrValueOutOfRange asn1.Error = "snmp: value out of range"
)
