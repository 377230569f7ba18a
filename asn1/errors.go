package asn1

// Error is the closed taxonomy of codec failures. It implements the error
// interface as a plain string so values are comparable with == and with
// errors.Is through the standard wrapping machinery.
type Error string

func (e Error) Error() string { return string(e) }

// The reader-level error kinds (spec §7). snmp/errors.go adds two more
// PDU-level kinds on top of these at the snmp package boundary.
const (
	// ErrEof is returned when a read runs past the end of the window.
	ErrEof Error = "asn1: unexpected end of buffer"

	// ErrInvalidLen is returned for a malformed length field: indefinite
	// form (0x80), the reserved 0xFF leading byte, or a declared body
	// length that exceeds the remaining window.
	ErrInvalidLen Error = "asn1: invalid length"

	// ErrWrongType is returned when a tag octet does not match what the
	// caller expected to read.
	ErrWrongType Error = "asn1: unexpected tag"

	// ErrUnsupportedType names a tag octet that is valid DER but outside
	// the SNMP subset this package understands. No reader in this module
	// returns it: snmp.Reader.Next ends iteration on such a tag instead.
	ErrUnsupportedType Error = "asn1: unsupported tag"

	// ErrParseError is returned for a semantically invalid body: a
	// BOOLEAN octet other than 0x00/0x01, or an OID with a dangling
	// continuation bit.
	ErrParseError Error = "asn1: malformed value"

	// ErrIntOverflow is returned when an INTEGER body exceeds eight
	// octets, or an OID sub-identifier accumulator would overflow 32 bits.
	ErrIntOverflow Error = "asn1: integer overflow"
)
