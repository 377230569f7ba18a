package snmp

import (
	"encoding/binary"
	"math/bits"

	"github.com/vpbank/snmpcodec/asn1"
)

// DefaultBufferSize is the fixed writer capacity spec §5 assigns to every
// outbound message; callers instantiate one Writer per message.
const DefaultBufferSize = 4096

// Writer fills its backing array from the tail forward: the encoded
// message always occupies the final Len() bytes of the array. Writing in
// reverse lets the length prefix be emitted after the body without a
// second pass or an intermediate allocation, since DER requires the
// length to be known before the tag/length prefix is written.
//
// All Writer operations are infallible given sufficient remaining
// capacity; running out of room is a programmer error and panics, the
// same contract as the original source's unchecked buffer arithmetic
// (spec §4.2 "Writer preconditions... are programmer errors").
type Writer struct {
	buf []byte
	len int
}

// NewWriter allocates a Writer with DefaultBufferSize capacity.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, DefaultBufferSize)}
}

// NewWriterSize allocates a Writer with the given capacity.
func NewWriterSize(capacity int) *Writer {
	return &Writer{buf: make([]byte, capacity)}
}

// Bytes returns the encoded message: the tail Len() bytes of the backing
// array. The returned slice aliases the Writer's internal buffer and is
// only valid until the next Reset.
func (w *Writer) Bytes() []byte {
	return w.buf[len(w.buf)-w.len:]
}

// Len reports the number of valid encoded bytes currently in the buffer.
func (w *Writer) Len() int { return w.len }

// Reset clears the buffer so it can be reused for the next message.
func (w *Writer) Reset() { w.len = 0 }

// pushChunk copies chunk into the buffer immediately before the current
// tail, growing len by len(chunk).
func (w *Writer) pushChunk(chunk []byte) {
	offset := len(w.buf) - w.len
	if offset < len(chunk) {
		panic("snmp: writer buffer exhausted")
	}
	copy(w.buf[offset-len(chunk):offset], chunk)
	w.len += len(chunk)
}

func (w *Writer) pushByte(b byte) {
	if w.len >= len(w.buf) {
		panic("snmp: writer buffer exhausted")
	}
	w.buf[len(w.buf)-w.len-1] = b
	w.len++
}

// pushConstructed snapshots len, invokes f (which pushes the inner body
// tail-first), then pushes the length of what f wrote followed by tag.
// Because the inner body has already grown toward the front, this leaves
// exactly the right gap for the tag+length prefix.
func (w *Writer) pushConstructed(tag byte, f func(*Writer)) {
	before := w.len
	f(w)
	w.pushLength(w.len - before)
	w.pushByte(tag)
}

func (w *Writer) pushSequence(f func(*Writer)) {
	w.pushConstructed(asn1.TagSequence, f)
}

// pushLength emits a DER length field: a single byte for values < 128,
// otherwise a leading 0x80|n byte followed by n big-endian octets of the
// length with leading zero bytes stripped (always the minimal form).
func (w *Writer) pushLength(n int) {
	if n < 128 {
		w.pushByte(byte(n))
		return
	}
	var tmp [8]byte
	v := uint64(n)
	i := 8
	for v > 0 {
		i--
		tmp[i] = byte(v)
		v >>= 8
	}
	lengthLen := 8 - i
	w.pushChunk(tmp[i:])
	w.pushByte(byte(lengthLen) | 0x80)
}

// pushInt64Body writes the minimal-length two's-complement big-endian body
// of n, returning the number of bytes written. The starting length is
// 8 minus the count of redundant leading sign-extension bytes (at least
// 1); if the top bit of that slice disagrees with n's sign, a guard byte
// (0x00 for non-negative, 0xff for negative) is prepended.
func (w *Writer) pushInt64Body(n int64) int {
	var signByte byte
	var leadingSignBytes int
	if n >= 0 {
		leadingSignBytes = bits.LeadingZeros64(uint64(n)) / 8
	} else {
		signByte = 0xff
		leadingSignBytes = bits.LeadingZeros64(^uint64(n)) / 8
	}
	count := 8 - leadingSignBytes
	if count == 0 {
		count = 1
	}

	var full [8]byte
	binary.BigEndian.PutUint64(full[:], uint64(n))
	if full[8-count]^signByte > 0x7f {
		count++
	}
	body := full[8-count:]
	w.pushChunk(body)
	return count
}

// pushInteger pushes a complete INTEGER TLV.
func (w *Writer) pushInteger(n int64) {
	l := w.pushInt64Body(n)
	w.pushLength(l)
	w.pushByte(asn1.TagInteger)
}

func (w *Writer) pushBoolean(b bool) {
	if b {
		w.pushByte(0x01)
	} else {
		w.pushByte(0x00)
	}
	w.pushLength(1)
	w.pushByte(asn1.TagBoolean)
}

func (w *Writer) pushNull() {
	w.pushChunk([]byte{asn1.TagNull, 0})
}

func (w *Writer) pushOctetString(b []byte) {
	w.pushChunk(b)
	w.pushLength(len(b))
	w.pushByte(asn1.TagOctetString)
}

func (w *Writer) pushIpAddress(ip [4]byte) {
	w.pushChunk(ip[:])
	w.pushLength(4)
	w.pushByte(asn1.TagIpAddress)
}

func (w *Writer) pushCounter32(n uint32) {
	l := w.pushInt64Body(int64(n))
	w.pushLength(l)
	w.pushByte(asn1.TagCounter32)
}

func (w *Writer) pushUnsigned32(n uint32) {
	l := w.pushInt64Body(int64(n))
	w.pushLength(l)
	w.pushByte(asn1.TagUnsigned32)
}

func (w *Writer) pushTimeticks(n uint32) {
	l := w.pushInt64Body(int64(n))
	w.pushLength(l)
	w.pushByte(asn1.TagTimeticks)
}

func (w *Writer) pushOpaque(b []byte) {
	w.pushChunk(b)
	w.pushLength(len(b))
	w.pushByte(asn1.TagOpaque)
}

func (w *Writer) pushCounter64(n uint64) {
	l := w.pushInt64Body(int64(n))
	w.pushLength(l)
	w.pushByte(asn1.TagCounter64)
}

func (w *Writer) pushEndOfMibView() { w.pushChunk([]byte{asn1.TagEndOfMibView, 0}) }
func (w *Writer) pushNoSuchObject() { w.pushChunk([]byte{asn1.TagNoSuchObject, 0}) }
func (w *Writer) pushNoSuchInstance() {
	w.pushChunk([]byte{asn1.TagNoSuchInstance, 0})
}

// pushObjectIdentifierRaw pushes an OID TLV from already-packed DER
// content octets (used when re-encoding a Value holding a borrowed OID).
func (w *Writer) pushObjectIdentifierRaw(raw []byte) {
	w.pushChunk(raw)
	w.pushLength(len(raw))
	w.pushByte(asn1.TagObjectIdentifier)
}

// pushObjectIdentifier packs ids (>= 2 sub-identifiers, ids[0] < 3,
// ids[1] < 40 when ids[0] < 2) directly into the tail-filled buffer and
// pushes the OID TLV. Sub-IDs after the first two are written in reverse
// order since the buffer grows frontward; within each sub-ID, the
// least-significant 7-bit group is written first with the continuation bit
// clear, then each higher group with it set, so the right-to-left fill
// leaves the groups most-significant-first on the wire.
func (w *Writer) pushObjectIdentifier(ids []uint32) {
	if len(ids) < 2 {
		panic("snmp: OID needs at least 2 sub-identifiers")
	}
	a, b := ids[0], ids[1]
	if a > 2 {
		panic("snmp: OID first arc must be 0, 1, or 2")
	}
	if a < 2 && b >= 40 {
		panic("snmp: OID second arc must be < 40 when first arc is 0 or 1")
	}

	before := w.len
	for i := len(ids) - 1; i >= 2; i-- {
		subid := ids[i]
		w.pushByte(byte(subid & 0x7f))
		subid >>= 7
		for subid != 0 {
			w.pushByte(byte(subid&0x7f) | 0x80)
			subid >>= 7
		}
	}
	w.pushByte(byte(a*40 + b))
	w.pushLength(w.len - before)
	w.pushByte(asn1.TagObjectIdentifier)
}
