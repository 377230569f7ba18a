// Package snmp implements the SNMPv2c PDU codec on top of package asn1's
// tag/error vocabulary and package asn1/oid's OBJECT IDENTIFIER codec: a
// zero-copy streaming Reader, a reverse (tail-first) Writer, the
// polymorphic Value model, and the PDU parse/build/varbind-iteration
// operations.
//
// Reader and Writer are deliberately kept in the same package as Value:
// a Sequence/Constructed/SnmpXxx Value variant owns a sub-Reader, and
// Reader's iterator mode produces Value — the two types are mutually
// referential, the same shape as the original Rust asnreader.rs/value.rs
// pair (which resolve the same way within one crate).
package snmp

import (
	"github.com/vpbank/snmpcodec/asn1"
	"github.com/vpbank/snmpcodec/asn1/oid"
)

// Reader is a cursor over a borrowed byte window. Every value it produces
// either is a primitive decoded into an owned scalar or is a sub-slice of
// the same window — the reader never copies the window's bytes and never
// yields a slice extending past its window. The only allocation is the
// sub-Reader handed out for a constructed value.
type Reader struct {
	buf []byte
}

// NewReader wraps buf for reading. The returned Reader borrows buf for its
// entire lifetime; buf must outlive the Reader and every slice it yields.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len reports the number of unread bytes remaining in the window.
func (r *Reader) Len() int { return len(r.buf) }

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if len(r.buf) == 0 {
		return 0, asn1.ErrEof
	}
	return r.buf[0], nil
}

// ReadByte consumes and returns the next byte.
func (r *Reader) ReadByte() (byte, error) {
	if len(r.buf) == 0 {
		return 0, asn1.ErrEof
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b, nil
}

// ReadLength reads a DER length field. Short form is a single byte < 128.
// Long form is a leading byte with the high bit set whose low 7 bits give
// the count of following big-endian length octets. A leading byte of 0x80
// (indefinite form) or 0xFF (reserved) fails with ErrInvalidLen; DER
// long-form minimality is not enforced on input (spec §9 open question).
func (r *Reader) ReadLength() (int, error) {
	head, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if head < 128 {
		return int(head), nil
	}
	if head == 0xff {
		return 0, asn1.ErrInvalidLen
	}
	lengthLen := int(head & 0x7f)
	if lengthLen == 0 {
		return 0, asn1.ErrInvalidLen
	}
	if lengthLen > 8 || lengthLen > len(r.buf) {
		return 0, asn1.ErrInvalidLen
	}
	var n uint64
	for _, b := range r.buf[:lengthLen] {
		n = n<<8 | uint64(b)
	}
	r.buf = r.buf[lengthLen:]
	if n > uint64(^uint(0)>>1) {
		return 0, asn1.ErrInvalidLen
	}
	return int(n), nil
}

// ReadRaw verifies the tag octet equals expected, reads the length, and
// returns the body as a sub-slice of the caller's window (zero-copy).
func (r *Reader) ReadRaw(expected byte) ([]byte, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if tag != expected {
		return nil, asn1.ErrWrongType
	}
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	if n > len(r.buf) {
		return nil, asn1.ErrInvalidLen
	}
	body := r.buf[:n]
	r.buf = r.buf[n:]
	return body, nil
}

// ReadConstructed verifies the tag, reads the length, and invokes f with a
// sub-Reader positioned over exactly that many bytes.
func (r *Reader) ReadConstructed(expected byte, f func(*Reader) error) error {
	body, err := r.ReadRaw(expected)
	if err != nil {
		return err
	}
	return f(NewReader(body))
}

// readInt64Body reads the length-prefixed INTEGER body for expected and
// sign-extends it into an int64 (spec §4.1 "read signed integer body").
func (r *Reader) readInt64Body(expected byte) (int64, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if tag != expected {
		return 0, asn1.ErrWrongType
	}
	n, err := r.ReadLength()
	if err != nil {
		return 0, err
	}
	if n > len(r.buf) {
		return 0, asn1.ErrInvalidLen
	}
	body := r.buf[:n]
	r.buf = r.buf[n:]
	return decodeInt64(body)
}

// decodeInt64 left-aligns a 0..=8 octet two's-complement body into an
// 8-byte field and sign-extends by shifting left then arithmetic-shifting
// right by (8-len)*8 bits.
func decodeInt64(body []byte) (int64, error) {
	if len(body) > 8 {
		return 0, asn1.ErrIntOverflow
	}
	var bytes [8]byte
	copy(bytes[8-len(body):], body)
	v := int64(uint64(bytes[0])<<56 | uint64(bytes[1])<<48 | uint64(bytes[2])<<40 | uint64(bytes[3])<<32 |
		uint64(bytes[4])<<24 | uint64(bytes[5])<<16 | uint64(bytes[6])<<8 | uint64(bytes[7]))
	shift := uint((8 - len(body)) * 8)
	if shift > 0 {
		v = (v << shift) >> shift
	}
	return v, nil
}

// ReadBoolean reads a BOOLEAN value. DER mandates a single-octet body of
// exactly 0x00 or 0x01; any other value is ErrParseError.
func (r *Reader) ReadBoolean() (bool, error) {
	body, err := r.ReadRaw(asn1.TagBoolean)
	if err != nil {
		return false, err
	}
	if len(body) != 1 {
		return false, asn1.ErrInvalidLen
	}
	switch body[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, asn1.ErrParseError
	}
}

// ReadInteger reads an INTEGER value as a signed 64-bit integer.
func (r *Reader) ReadInteger() (int64, error) {
	return r.readInt64Body(asn1.TagInteger)
}

// ReadOctetString reads an OCTET STRING body (zero-copy).
func (r *Reader) ReadOctetString() ([]byte, error) {
	return r.ReadRaw(asn1.TagOctetString)
}

// ReadNull reads a NULL value, which must have an empty body.
func (r *Reader) ReadNull() error {
	body, err := r.ReadRaw(asn1.TagNull)
	if err != nil {
		return err
	}
	if len(body) != 0 {
		return asn1.ErrInvalidLen
	}
	return nil
}

// ReadObjectIdentifier consumes the body as an OID wrapper without
// decoding it into sub-identifiers.
func (r *Reader) ReadObjectIdentifier() (oid.ObjectIdentifier, error) {
	body, err := r.ReadRaw(asn1.TagObjectIdentifier)
	if err != nil {
		return oid.ObjectIdentifier{}, err
	}
	return oid.FromBytes(body), nil
}

// ReadSequence reads a SEQUENCE and invokes f with a sub-Reader over its
// contents.
func (r *Reader) ReadSequence(f func(*Reader) error) error {
	return r.ReadConstructed(asn1.TagSequence, f)
}

// ReadCounter32 reads an application Counter32.
func (r *Reader) ReadCounter32() (uint32, error) {
	v, err := r.readInt64Body(asn1.TagCounter32)
	return uint32(v), err
}

// ReadUnsigned32 reads an application Unsigned32 (Gauge32 shares this tag).
func (r *Reader) ReadUnsigned32() (uint32, error) {
	v, err := r.readInt64Body(asn1.TagUnsigned32)
	return uint32(v), err
}

// ReadTimeticks reads an application TimeTicks.
func (r *Reader) ReadTimeticks() (uint32, error) {
	v, err := r.readInt64Body(asn1.TagTimeticks)
	return uint32(v), err
}

// ReadCounter64 reads an application Counter64.
func (r *Reader) ReadCounter64() (uint64, error) {
	v, err := r.readInt64Body(asn1.TagCounter64)
	return uint64(v), err
}

// ReadOpaque reads an application Opaque body (zero-copy).
func (r *Reader) ReadOpaque() ([]byte, error) {
	return r.ReadRaw(asn1.TagOpaque)
}

// ReadIpAddress reads a 4-octet application IpAddress.
func (r *Reader) ReadIpAddress() ([4]byte, error) {
	var ip [4]byte
	body, err := r.ReadRaw(asn1.TagIpAddress)
	if err != nil {
		return ip, err
	}
	if len(body) != 4 {
		return ip, asn1.ErrInvalidLen
	}
	copy(ip[:], body)
	return ip, nil
}

// Next implements the reader's lazy iterator mode: peek one byte, dispatch
// by tag to the matching typed reader, and return the decoded Value. It
// returns ok=false when the window is empty (clean end of input), when the
// next value fails to decode, or when the next tag is an unrecognized
// primitive tag (silent termination, the
// "best-effort streaming" contract of spec §4.1 — callers needing strict
// error semantics must use the typed readers directly instead).
//
// Unknown constructed tags are *not* treated as termination: they yield a
// KindConstructed Value wrapping a sub-Reader over the body. This asymmetry
// (unknown constructed tags continue, unknown primitive tags stop) is
// preserved from the original source; see spec §9's open question.
func (r *Reader) Next() (Value, bool) {
	tag, err := r.PeekByte()
	if err != nil {
		return Value{}, false
	}

	var v Value
	switch tag {
	case asn1.TagBoolean:
		b, e := r.ReadBoolean()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindBoolean, boolean: b}
	case asn1.TagNull:
		if e := r.ReadNull(); e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindNull}
	case asn1.TagInteger:
		i, e := r.ReadInteger()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindInteger, integer: i}
	case asn1.TagOctetString:
		s, e := r.ReadOctetString()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindOctetString, bytes: s}
	case asn1.TagObjectIdentifier:
		o, e := r.ReadObjectIdentifier()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindObjectIdentifier, oid: o}
	case asn1.TagSequence:
		body, e := r.ReadRaw(tag)
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindSequence, sub: NewReader(body)}
	case asn1.TagSet:
		body, e := r.ReadRaw(tag)
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindSet, sub: NewReader(body)}
	case asn1.TagIpAddress:
		ip, e := r.ReadIpAddress()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindIpAddress, ip: ip}
	case asn1.TagCounter32:
		u, e := r.ReadCounter32()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindCounter32, unsigned32: u}
	case asn1.TagUnsigned32:
		u, e := r.ReadUnsigned32()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindUnsigned32, unsigned32: u}
	case asn1.TagTimeticks:
		u, e := r.ReadTimeticks()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindTimeticks, unsigned32: u}
	case asn1.TagOpaque:
		s, e := r.ReadOpaque()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindOpaque, bytes: s}
	case asn1.TagCounter64:
		u, e := r.ReadCounter64()
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindCounter64, unsigned64: u}
	case asn1.TagNoSuchObject:
		if _, e := r.ReadRaw(tag); e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindNoSuchObject}
	case asn1.TagNoSuchInstance:
		if _, e := r.ReadRaw(tag); e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindNoSuchInstance}
	case asn1.TagEndOfMibView:
		if _, e := r.ReadRaw(tag); e != nil {
			return Value{}, false
		}
		v = Value{Kind: KindEndOfMibView}
	case asn1.TagGetRequest, asn1.TagGetNextRequest, asn1.TagGetBulkRequest,
		asn1.TagResponse, asn1.TagSetRequest, asn1.TagInformRequest,
		asn1.TagTrap, asn1.TagReport:
		body, e := r.ReadRaw(tag)
		if e != nil {
			return Value{}, false
		}
		v = Value{Kind: kindForMessageTag(tag), sub: NewReader(body)}
	default:
		if tag&asn1.Constructed == asn1.Constructed {
			body, e := r.ReadRaw(tag)
			if e != nil {
				return Value{}, false
			}
			v = Value{Kind: KindConstructed, tag: tag, sub: NewReader(body)}
		} else {
			return Value{}, false
		}
	}
	return v, true
}

func kindForMessageTag(tag byte) Kind {
	switch tag {
	case asn1.TagGetRequest:
		return KindSnmpGetRequest
	case asn1.TagGetNextRequest:
		return KindSnmpGetNextRequest
	case asn1.TagGetBulkRequest:
		return KindSnmpGetBulkRequest
	case asn1.TagResponse:
		return KindSnmpResponse
	case asn1.TagSetRequest:
		return KindSnmpSetRequest
	case asn1.TagInformRequest:
		return KindSnmpInformRequest
	case asn1.TagTrap:
		return KindSnmpTrap
	case asn1.TagReport:
		return KindSnmpReport
	default:
		panic("snmp: unreachable message tag")
	}
}
