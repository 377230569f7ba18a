package snmp

import (
	"github.com/vpbank/snmpcodec/asn1"
	"github.com/vpbank/snmpcodec/asn1/oid"
)

// Varbind is a single (OID, Value) pair carried in an SNMP PDU.
type Varbind struct {
	Name  oid.ObjectIdentifier
	Value Value
}

// Varbinds is a lazy, single-pass sequence of Varbind pairs over a
// sub-Reader positioned at a varbind list's contents (spec §4.6). The
// caller re-iterates by calling Clone before consumption, since reading
// this sequence advances it irreversibly.
type Varbinds struct {
	inner *Reader
}

// NewVarbinds wraps the raw contents of a varbind-list SEQUENCE (not
// including its own tag/length) for iteration.
func NewVarbinds(body []byte) Varbinds {
	return Varbinds{inner: NewReader(body)}
}

// Clone returns an independent Varbinds positioned at the same point as v,
// so the caller can iterate it more than once.
func (v Varbinds) Clone() Varbinds {
	cp := *v.inner
	return Varbinds{inner: &cp}
}

// Next reads one (OID, Value) pair: a SEQUENCE containing an OID followed
// by exactly one value, dispatched by tag the same way Reader.Next does.
// It returns ok=false on any decode failure or end of input, terminating
// iteration permanently (spec §4.6 "stop... on any decode failure").
func (v *Varbinds) Next() (Varbind, bool) {
	body, err := v.inner.ReadRaw(asn1.TagSequence)
	if err != nil {
		v.inner.buf = nil
		return Varbind{}, false
	}
	pair := NewReader(body)
	name, err := pair.ReadObjectIdentifier()
	if err != nil {
		v.inner.buf = nil
		return Varbind{}, false
	}
	val, ok := pair.Next()
	if !ok {
		v.inner.buf = nil
		return Varbind{}, false
	}
	return Varbind{Name: name, Value: val}, true
}

// All drains the remaining pairs into a slice. It is a convenience for
// callers that want eager materialization (tests, display); the streaming
// Next method remains the zero-allocation path.
func (v Varbinds) All() []Varbind {
	var out []Varbind
	for {
		vb, ok := v.Next()
		if !ok {
			return out
		}
		out = append(out, vb)
	}
}
