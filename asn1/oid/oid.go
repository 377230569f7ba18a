// Package oid implements the DER OBJECT IDENTIFIER wire encoding: base-128
// sub-identifier packing with continuation bits, and the 40*a+b first-arc
// rule for the leading octet.
package oid

import (
	"strconv"
	"strings"

	"github.com/vpbank/snmpcodec/asn1"
)

// MaxSubIDs is the canonical bound on the number of sub-identifiers this
// package will decode into, matching the caller-supplied buffer size used
// throughout the rest of the codec.
const MaxSubIDs = 128

// ObjectIdentifier wraps the raw DER content octets of an OID (no leading
// tag/length). It is a zero-copy view into whatever buffer produced it;
// decoding into sub-identifiers happens on demand via Decode.
type ObjectIdentifier struct {
	raw []byte
}

// FromBytes wraps raw DER content octets without decoding them.
func FromBytes(raw []byte) ObjectIdentifier {
	return ObjectIdentifier{raw: raw}
}

// Raw returns the underlying DER content octets.
func (o ObjectIdentifier) Raw() []byte { return o.raw }

// Decode unpacks the wrapped content octets into sub-identifiers, writing
// them into out (caller-supplied storage, typically a [MaxSubIDs]uint32)
// and returning the populated prefix.
//
// Rules (spec §4.3):
//  1. Fewer than 2 raw bytes is ErrInvalidLen.
//  2. out[0] = raw[0]/40, out[1] = raw[0]%40.
//  3. Each subsequent byte accumulates (val<<7)|(byte&0x7F) into a running
//     32-bit sub-ID; a clear high bit ends the sub-ID. A 32-bit shift
//     overflow is ErrIntOverflow. A dangling continuation bit at the end
//     of input is ErrParseError.
//  4. Exceeding len(out) is ErrEof.
func (o ObjectIdentifier) Decode(out []uint32) ([]uint32, error) {
	in := o.raw
	if len(in) < 2 {
		return nil, asn1.ErrInvalidLen
	}
	if len(out) < 2 {
		return nil, asn1.ErrEof
	}
	out[0] = uint32(in[0] / 40)
	out[1] = uint32(in[0] % 40)
	pos := 2

	var cur uint32
	done := true
	for _, b := range in[1:] {
		done = b&0x80 == 0
		val := uint32(b & 0x7F)
		if cur > (1<<32-1)>>7 {
			return nil, asn1.ErrIntOverflow
		}
		cur = (cur << 7) | val
		if done {
			if pos == len(out) {
				return nil, asn1.ErrEof
			}
			out[pos] = cur
			pos++
			cur = 0
		}
	}
	if !done {
		return nil, asn1.ErrParseError
	}
	return out[:pos], nil
}

// String renders the dotted-decimal form, e.g. "1.3.6.1.2.1.1.1.0". On
// decode failure it renders a diagnostic placeholder instead of the
// numeric form, mirroring the original Rust Display impl's fallback.
func (o ObjectIdentifier) String() string {
	var buf [MaxSubIDs]uint32
	ids, err := o.Decode(buf[:])
	if err != nil {
		return "<invalid OID: " + err.Error() + ">"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether the OID decodes successfully and its sub-ID
// sequence matches other element-wise.
func (o ObjectIdentifier) Equal(other []uint32) bool {
	var buf [MaxSubIDs]uint32
	ids, err := o.Decode(buf[:])
	if err != nil || len(ids) != len(other) {
		return false
	}
	for i := range ids {
		if ids[i] != other[i] {
			return false
		}
	}
	return true
}

// Pack encodes a sub-identifier sequence into DER content octets (no
// leading tag/length), appending to dst and returning the grown slice.
//
// Preconditions (programmer error, not a runtime failure — spec §4.2):
// len(ids) >= 2, ids[0] < 3, and ids[1] < 40 when ids[0] < 2. Violating
// these panics rather than returning an error, matching the Rust source's
// assert! semantics for a caller-supplied malformed OID.
func Pack(dst []byte, ids []uint32) []byte {
	if len(ids) < 2 {
		panic("oid: at least 2 sub-identifiers required")
	}
	a, b := ids[0], ids[1]
	if a > 2 {
		panic("oid: first arc must be 0, 1, or 2")
	}
	if a < 2 && b >= 40 {
		panic("oid: second arc must be < 40 when first arc is 0 or 1")
	}

	dst = append(dst, byte(a*40+b))
	for _, subid := range ids[2:] {
		dst = appendSubID(dst, subid)
	}
	return dst
}

// appendSubID appends the base-128 continuation-byte encoding of a single
// sub-identifier to dst. Bytes are produced least-significant-group first
// then reversed in place, since the group count isn't known up front.
func appendSubID(dst []byte, subid uint32) []byte {
	start := len(dst)
	dst = append(dst, byte(subid&0x7F))
	subid >>= 7
	for subid != 0 {
		dst = append(dst, byte(subid&0x7F)|0x80)
		subid >>= 7
	}
	reverse(dst[start:])
	return dst
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
