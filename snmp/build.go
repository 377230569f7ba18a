package snmp

import (
	"fmt"

	"github.com/vpbank/snmpcodec/asn1"
)

// VarbindOut describes one varbind to encode: a raw sub-identifier sequence
// and the value to pair it with. Building takes raw sub-IDs rather than an
// already-wrapped oid.ObjectIdentifier because the writer's
// pushObjectIdentifier encodes directly into the tail-filled buffer without
// an intermediate allocation (spec §4.2, mirroring pdu.rs's build_* helpers
// operating on slices of u32).
type VarbindOut struct {
	Oid   []uint32
	Value Value
}

// pushValue dispatches a scalar Value onto w by Kind. Constructed Kinds
// (Sequence, Set, Constructed, any SnmpXxx message type) have no meaning as
// a varbind payload and panic, the same programmer-error contract as the
// rest of Writer.
func pushValue(w *Writer, v Value) {
	switch v.Kind {
	case KindBoolean:
		w.pushBoolean(v.boolean)
	case KindInteger:
		w.pushInteger(v.integer)
	case KindOctetString:
		w.pushOctetString(v.bytes)
	case KindNull:
		w.pushNull()
	case KindObjectIdentifier:
		w.pushObjectIdentifierRaw(v.oid.Raw())
	case KindIpAddress:
		w.pushIpAddress(v.ip)
	case KindCounter32:
		w.pushCounter32(v.unsigned32)
	case KindUnsigned32:
		w.pushUnsigned32(v.unsigned32)
	case KindTimeticks:
		w.pushTimeticks(v.unsigned32)
	case KindOpaque:
		w.pushOpaque(v.bytes)
	case KindCounter64:
		w.pushCounter64(v.unsigned64)
	case KindNoSuchObject:
		w.pushNoSuchObject()
	case KindNoSuchInstance:
		w.pushNoSuchInstance()
	case KindEndOfMibView:
		w.pushEndOfMibView()
	default:
		panic(fmt.Sprintf("snmp: Kind %s cannot be encoded as a varbind value", v.Kind))
	}
}

// pushVarbind pushes one SEQUENCE { OID, Value } entry. Calls inside a
// tail-filled buffer must run in the reverse of the final on-wire order, so
// Value is pushed before OID (spec §4.2's "reverse order" framing idiom).
func pushVarbind(w *Writer, vb VarbindOut) {
	w.pushSequence(func(w *Writer) {
		pushValue(w, vb.Value)
		w.pushObjectIdentifier(vb.Oid)
	})
}

// pushVarbindList pushes the varbind-list SEQUENCE, iterating vbs in
// reverse so the encoded order matches the slice order.
func pushVarbindList(w *Writer, vbs []VarbindOut) {
	w.pushSequence(func(w *Writer) {
		for i := len(vbs) - 1; i >= 0; i-- {
			pushVarbind(w, vbs[i])
		}
	})
}

// pushPduBody pushes the four fields common to every PDU type (reqId,
// errorStatus, errorIndex, varbind list), again in reverse so the final
// bytes read in the correct order.
func pushPduBody(w *Writer, reqId int32, errorStatus, errorIndex uint32, vbs []VarbindOut) {
	pushVarbindList(w, vbs)
	w.pushInteger(int64(errorIndex))
	w.pushInteger(int64(errorStatus))
	w.pushInteger(int64(reqId))
}

// pushPduEnvelope wraps f (which must push a complete PDU body) in the
// context-specific constructed tag, then pushes community and version
// around it to complete the outer SEQUENCE.
func pushPduEnvelope(w *Writer, tag byte, community []byte, f func(*Writer)) {
	w.Reset()
	w.pushSequence(func(w *Writer) {
		w.pushConstructed(tag, f)
		w.pushOctetString(community)
		w.pushInteger(supportedVersion)
	})
}

func nullVarbinds(oids [][]uint32) []VarbindOut {
	vbs := make([]VarbindOut, len(oids))
	for i, o := range oids {
		vbs[i] = VarbindOut{Oid: o, Value: Value{Kind: KindNull}}
	}
	return vbs
}

// BuildGet encodes a GetRequest PDU for the given OIDs, each paired with a
// NULL value as the wire convention requires (spec §4.5).
func BuildGet(w *Writer, community []byte, reqId int32, oids [][]uint32) {
	vbs := nullVarbinds(oids)
	pushPduEnvelope(w, asn1.TagGetRequest, community, func(w *Writer) {
		pushPduBody(w, reqId, 0, 0, vbs)
	})
}

// BuildGetNext encodes a GetNextRequest PDU.
func BuildGetNext(w *Writer, community []byte, reqId int32, oids [][]uint32) {
	vbs := nullVarbinds(oids)
	pushPduEnvelope(w, asn1.TagGetNextRequest, community, func(w *Writer) {
		pushPduBody(w, reqId, 0, 0, vbs)
	})
}

// BuildGetBulk encodes a GetBulkRequest PDU. nonRepeaters and
// maxRepetitions are carried in the errorStatus and errorIndex wire
// positions respectively (RFC 3416 §4.2.3).
func BuildGetBulk(w *Writer, community []byte, reqId int32, nonRepeaters, maxRepetitions uint32, oids [][]uint32) {
	vbs := nullVarbinds(oids)
	pushPduEnvelope(w, asn1.TagGetBulkRequest, community, func(w *Writer) {
		pushPduBody(w, reqId, nonRepeaters, maxRepetitions, vbs)
	})
}

// BuildSet encodes a SetRequest PDU carrying the given varbinds with their
// intended values.
func BuildSet(w *Writer, community []byte, reqId int32, vbs []VarbindOut) {
	pushPduEnvelope(w, asn1.TagSetRequest, community, func(w *Writer) {
		pushPduBody(w, reqId, 0, 0, vbs)
	})
}

// BuildResponse encodes a Response PDU. Varbind values may include the
// exception markers (KindNoSuchObject, KindNoSuchInstance, KindEndOfMibView)
// in addition to ordinary scalar types.
func BuildResponse(w *Writer, community []byte, reqId int32, errorStatus, errorIndex uint32, vbs []VarbindOut) {
	pushPduEnvelope(w, asn1.TagResponse, community, func(w *Writer) {
		pushPduBody(w, reqId, errorStatus, errorIndex, vbs)
	})
}
