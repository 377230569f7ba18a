package snmp

import (
	"encoding/json"
	"fmt"

	"github.com/vpbank/snmpcodec/asn1/oid"
)

// Kind discriminates the variants of Value. Using a struct-with-Kind
// instead of a Go interface keeps decoding allocation-free on the parsing
// path (spec §1 Non-goals): boxing a concrete payload behind an interface
// would allocate for every non-pointer-shaped variant.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindOctetString
	KindNull
	KindObjectIdentifier
	KindSequence
	KindSet
	KindConstructed

	KindIpAddress
	KindCounter32
	KindUnsigned32
	KindTimeticks
	KindOpaque
	KindCounter64

	KindNoSuchObject
	KindNoSuchInstance
	KindEndOfMibView

	KindSnmpGetRequest
	KindSnmpGetNextRequest
	KindSnmpGetBulkRequest
	KindSnmpResponse
	KindSnmpSetRequest
	KindSnmpInformRequest
	KindSnmpTrap
	KindSnmpReport
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindOctetString:
		return "OctetString"
	case KindNull:
		return "Null"
	case KindObjectIdentifier:
		return "ObjectIdentifier"
	case KindSequence:
		return "Sequence"
	case KindSet:
		return "Set"
	case KindConstructed:
		return "Constructed"
	case KindIpAddress:
		return "IpAddress"
	case KindCounter32:
		return "Counter32"
	case KindUnsigned32:
		return "Unsigned32"
	case KindTimeticks:
		return "Timeticks"
	case KindOpaque:
		return "Opaque"
	case KindCounter64:
		return "Counter64"
	case KindNoSuchObject:
		return "NoSuchObject"
	case KindNoSuchInstance:
		return "NoSuchInstance"
	case KindEndOfMibView:
		return "EndOfMibView"
	case KindSnmpGetRequest:
		return "SnmpGetRequest"
	case KindSnmpGetNextRequest:
		return "SnmpGetNextRequest"
	case KindSnmpGetBulkRequest:
		return "SnmpGetBulkRequest"
	case KindSnmpResponse:
		return "SnmpResponse"
	case KindSnmpSetRequest:
		return "SnmpSetRequest"
	case KindSnmpInformRequest:
		return "SnmpInformRequest"
	case KindSnmpTrap:
		return "SnmpTrap"
	case KindSnmpReport:
		return "SnmpReport"
	default:
		return "Unknown"
	}
}

// Value is the tagged union covering every ASN.1/SNMP type the codec
// produces (spec §3). Exactly one payload field is meaningful, selected by
// Kind; the As* accessors panic if called against the wrong Kind, the same
// contract as unwrapping the wrong variant of a closed sum type.
type Value struct {
	Kind Kind

	boolean    bool
	integer    int64
	bytes      []byte
	oid        oid.ObjectIdentifier
	sub        *Reader
	tag        byte // only meaningful for KindConstructed
	ip         [4]byte
	unsigned32 uint32
	unsigned64 uint64
}

func (v Value) wrongKind(want Kind) {
	panic(fmt.Sprintf("snmp: Value is %s, not %s", v.Kind, want))
}

// Constructors for the scalar Value kinds a caller can legitimately build
// (as opposed to only ever decode off the wire) — used when assembling
// SetRequest and Response varbinds for BuildSet/BuildResponse.

func NewBoolean(b bool) Value { return Value{Kind: KindBoolean, boolean: b} }

func NewInteger(n int64) Value { return Value{Kind: KindInteger, integer: n} }

func NewOctetString(b []byte) Value { return Value{Kind: KindOctetString, bytes: b} }

func NewNull() Value { return Value{Kind: KindNull} }

func NewObjectIdentifier(ids []uint32) Value {
	raw := oid.Pack(make([]byte, 0, len(ids)*5), ids)
	return Value{Kind: KindObjectIdentifier, oid: oid.FromBytes(raw)}
}

func NewIpAddress(ip [4]byte) Value { return Value{Kind: KindIpAddress, ip: ip} }

func NewCounter32(n uint32) Value { return Value{Kind: KindCounter32, unsigned32: n} }

func NewUnsigned32(n uint32) Value { return Value{Kind: KindUnsigned32, unsigned32: n} }

func NewTimeticks(n uint32) Value { return Value{Kind: KindTimeticks, unsigned32: n} }

func NewOpaque(b []byte) Value { return Value{Kind: KindOpaque, bytes: b} }

func NewCounter64(n uint64) Value { return Value{Kind: KindCounter64, unsigned64: n} }

func NewNoSuchObject() Value { return Value{Kind: KindNoSuchObject} }

func NewNoSuchInstance() Value { return Value{Kind: KindNoSuchInstance} }

func NewEndOfMibView() Value { return Value{Kind: KindEndOfMibView} }

// AsBoolean returns the payload of a KindBoolean Value.
func (v Value) AsBoolean() bool {
	if v.Kind != KindBoolean {
		v.wrongKind(KindBoolean)
	}
	return v.boolean
}

// AsInteger returns the payload of a KindInteger Value.
func (v Value) AsInteger() int64 {
	if v.Kind != KindInteger {
		v.wrongKind(KindInteger)
	}
	return v.integer
}

// AsOctetString returns the payload of a KindOctetString or KindOpaque
// Value.
func (v Value) AsOctetString() []byte {
	if v.Kind != KindOctetString && v.Kind != KindOpaque {
		v.wrongKind(KindOctetString)
	}
	return v.bytes
}

// AsObjectIdentifier returns the payload of a KindObjectIdentifier Value.
func (v Value) AsObjectIdentifier() oid.ObjectIdentifier {
	if v.Kind != KindObjectIdentifier {
		v.wrongKind(KindObjectIdentifier)
	}
	return v.oid
}

// AsReader returns the sub-reader of a constructed Value (KindSequence,
// KindSet, KindConstructed, or any KindSnmp* message type).
func (v Value) AsReader() *Reader {
	switch v.Kind {
	case KindSequence, KindSet, KindConstructed,
		KindSnmpGetRequest, KindSnmpGetNextRequest, KindSnmpGetBulkRequest,
		KindSnmpResponse, KindSnmpSetRequest, KindSnmpInformRequest,
		KindSnmpTrap, KindSnmpReport:
		return v.sub
	default:
		v.wrongKind(KindSequence)
		return nil
	}
}

// ConstructedTag returns the raw tag octet of a KindConstructed Value.
func (v Value) ConstructedTag() byte {
	if v.Kind != KindConstructed {
		v.wrongKind(KindConstructed)
	}
	return v.tag
}

// AsIpAddress returns the payload of a KindIpAddress Value.
func (v Value) AsIpAddress() [4]byte {
	if v.Kind != KindIpAddress {
		v.wrongKind(KindIpAddress)
	}
	return v.ip
}

// AsUnsigned32 returns the payload of a KindCounter32, KindUnsigned32, or
// KindTimeticks Value.
func (v Value) AsUnsigned32() uint32 {
	switch v.Kind {
	case KindCounter32, KindUnsigned32, KindTimeticks:
		return v.unsigned32
	default:
		v.wrongKind(KindUnsigned32)
		return 0
	}
}

// AsUnsigned64 returns the payload of a KindCounter64 Value.
func (v Value) AsUnsigned64() uint64 {
	if v.Kind != KindCounter64 {
		v.wrongKind(KindCounter64)
	}
	return v.unsigned64
}

// String renders one line per Kind, grounded on the original source's
// Debug implementation for Value.
func (v Value) String() string {
	switch v.Kind {
	case KindBoolean:
		return fmt.Sprintf("BOOLEAN: %t", v.boolean)
	case KindInteger:
		return fmt.Sprintf("INTEGER: %d", v.integer)
	case KindOctetString:
		return fmt.Sprintf("OCTET STRING: %q", v.bytes)
	case KindNull:
		return "NULL"
	case KindObjectIdentifier:
		return fmt.Sprintf("OBJECT IDENTIFIER: %s", v.oid)
	case KindSequence:
		return "SEQUENCE"
	case KindSet:
		return "SET"
	case KindConstructed:
		return fmt.Sprintf("CONSTRUCTED-%d", v.tag)
	case KindIpAddress:
		return fmt.Sprintf("IP ADDRESS: %d.%d.%d.%d", v.ip[0], v.ip[1], v.ip[2], v.ip[3])
	case KindCounter32:
		return fmt.Sprintf("COUNTER32: %d", v.unsigned32)
	case KindUnsigned32:
		return fmt.Sprintf("UNSIGNED32: %d", v.unsigned32)
	case KindTimeticks:
		return fmt.Sprintf("TIMETICKS: %d", v.unsigned32)
	case KindOpaque:
		return fmt.Sprintf("OPAQUE: %x", v.bytes)
	case KindCounter64:
		return fmt.Sprintf("COUNTER64: %d", v.unsigned64)
	case KindNoSuchObject:
		return "NO SUCH OBJECT"
	case KindNoSuchInstance:
		return "NO SUCH INSTANCE"
	case KindEndOfMibView:
		return "END OF MIB VIEW"
	default:
		return fmt.Sprintf("SNMP %s", v.Kind)
	}
}

// jsonValue is the wire shape for Value.MarshalJSON, used by cmd/snmpdump's
// -json display mode — see format/json/formatter.go in the teacher repo for
// the pipeline-stage this narrows to a single-value display.
type jsonValue struct {
	Kind  string      `json:"kind"`
	Value interface{} `json:"value,omitempty"`
}

// MarshalJSON renders the Value's Kind and scalar payload. Constructed
// Values (Sequence/Set/Constructed/SnmpXxx) marshal with a nil Value since
// their sub-readers are single-pass and already consumed by the time a
// caller wants to display the parent.
func (v Value) MarshalJSON() ([]byte, error) {
	jv := jsonValue{Kind: v.Kind.String()}
	switch v.Kind {
	case KindBoolean:
		jv.Value = v.boolean
	case KindInteger:
		jv.Value = v.integer
	case KindOctetString, KindOpaque:
		jv.Value = v.bytes
	case KindObjectIdentifier:
		jv.Value = v.oid.String()
	case KindIpAddress:
		jv.Value = fmt.Sprintf("%d.%d.%d.%d", v.ip[0], v.ip[1], v.ip[2], v.ip[3])
	case KindCounter32, KindUnsigned32, KindTimeticks:
		jv.Value = v.unsigned32
	case KindCounter64:
		jv.Value = v.unsigned64
	}
	return json.Marshal(jv)
}
