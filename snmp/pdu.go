package snmp

import (
	"encoding/json"
	"fmt"

	"github.com/vpbank/snmpcodec/asn1"
)

// Pdu is a fully parsed SNMPv2c message: the envelope fields (version,
// community) plus the inner PDU fields shared by all eight message types.
// For GetBulkRequest, ErrorStatus and ErrorIndex carry NonRepeaters and
// MaxRepetitions respectively (RFC 3416 §4.2.3); use the named accessors
// to read them with the right meaning.
//
// Varbinds is left undecoded: spec §4.4 step 9 wraps the raw SEQUENCE
// bytes into a lazy iterator rather than eagerly decoding every pair, so
// a caller that only needs the envelope never pays for varbind decoding.
type Pdu struct {
	Version     int64
	Community   []byte
	Type        asn1.MessageType
	ReqId       int32
	ErrorStatus uint32
	ErrorIndex  uint32
	Varbinds    Varbinds
}

// supportedVersion is the wire value for SNMPv2c (RFC 3416 §2).
const supportedVersion = 1

// ParsePdu decodes a complete SNMPv2c message per spec §4.4:
//
//  1. Open the outer SEQUENCE.
//  2. Read INTEGER version; fail with ErrUnsupportedVersion unless it is 1.
//  3. Read OCTET STRING community.
//  4. Peek the message-type tag and open that constructed PDU.
//  5. Read INTEGER reqId, failing with ErrValueOutOfRange outside int32.
//  6. Read INTEGER errorStatus, failing with ErrValueOutOfRange if it is
//     negative or above the int32 maximum.
//  7. Read INTEGER errorIndex, same range check as errorStatus.
//  8. Read the raw varbind-list SEQUENCE without decoding its contents.
//
// Errors from the header fields and the PDU tag are wrapped with the field
// name for context; errors framing the outer SEQUENCE or the PDU body are
// returned as they are.
func ParsePdu(buf []byte) (Pdu, error) {
	var pdu Pdu
	r := NewReader(buf)

	err := r.ReadSequence(func(body *Reader) error {
		version, err := body.ReadInteger()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		if version != supportedVersion {
			return fmt.Errorf("version %d: %w", version, ErrUnsupportedVersion)
		}
		pdu.Version = version

		community, err := body.ReadOctetString()
		if err != nil {
			return fmt.Errorf("community: %w", err)
		}
		pdu.Community = community

		tag, err := body.PeekByte()
		if err != nil {
			return fmt.Errorf("pdu tag: %w", err)
		}
		msgType, err := asn1.MessageTypeFromTag(tag)
		if err != nil {
			return fmt.Errorf("pdu tag %#x: %w", tag, err)
		}
		pdu.Type = msgType

		return body.ReadConstructed(tag, func(inner *Reader) error {
			reqId, err := inner.ReadInteger()
			if err != nil {
				return fmt.Errorf("reqId: %w", err)
			}
			if reqId < -(1<<31) || reqId > (1<<31)-1 {
				return fmt.Errorf("reqId %d: %w", reqId, ErrValueOutOfRange)
			}
			pdu.ReqId = int32(reqId)

			errorStatus, err := inner.ReadInteger()
			if err != nil {
				return fmt.Errorf("errorStatus: %w", err)
			}
			if errorStatus < 0 || errorStatus > (1<<31)-1 {
				return fmt.Errorf("errorStatus %d: %w", errorStatus, ErrValueOutOfRange)
			}
			pdu.ErrorStatus = uint32(errorStatus)

			errorIndex, err := inner.ReadInteger()
			if err != nil {
				return fmt.Errorf("errorIndex: %w", err)
			}
			if errorIndex < 0 || errorIndex > (1<<31)-1 {
				return fmt.Errorf("errorIndex %d: %w", errorIndex, ErrValueOutOfRange)
			}
			pdu.ErrorIndex = uint32(errorIndex)

			varbindsBody, err := inner.ReadRaw(asn1.TagSequence)
			if err != nil {
				return fmt.Errorf("varbinds: %w", err)
			}
			pdu.Varbinds = NewVarbinds(varbindsBody)
			return nil
		})
	})
	if err != nil {
		return Pdu{}, err
	}
	return pdu, nil
}

// NonRepeaters returns ErrorStatus under its GetBulkRequest meaning.
func (p Pdu) NonRepeaters() uint32 { return p.ErrorStatus }

// MaxRepetitions returns ErrorIndex under its GetBulkRequest meaning.
func (p Pdu) MaxRepetitions() uint32 { return p.ErrorIndex }

// jsonPdu is the wire shape for Pdu.MarshalJSON.
type jsonPdu struct {
	Version     int64         `json:"version"`
	Community   string        `json:"community"`
	Type        string        `json:"type"`
	ReqId       int32         `json:"reqId"`
	ErrorStatus uint32        `json:"errorStatus"`
	ErrorIndex  uint32        `json:"errorIndex"`
	Varbinds    []jsonVarbind `json:"varbinds"`
}

type jsonVarbind struct {
	Oid   string `json:"oid"`
	Value Value  `json:"value"`
}

// MarshalJSON renders the envelope fields and eagerly drains Varbinds,
// since JSON display is a terminal consumer (spec §7.2; grounded on the
// teacher's format/json/formatter.go single-shot marshal pipeline).
func (p Pdu) MarshalJSON() ([]byte, error) {
	vbs := p.Varbinds.Clone().All()
	jvbs := make([]jsonVarbind, len(vbs))
	for i, vb := range vbs {
		jvbs[i] = jsonVarbind{Oid: vb.Name.String(), Value: vb.Value}
	}
	jp := jsonPdu{
		Version:     p.Version,
		Community:   string(p.Community),
		Type:        p.Type.String(),
		ReqId:       p.ReqId,
		ErrorStatus: p.ErrorStatus,
		ErrorIndex:  p.ErrorIndex,
		Varbinds:    jvbs,
	}
	return json.Marshal(jp)
}
