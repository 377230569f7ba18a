// Command snmpdump sends a single SNMPv2c request to each target in a YAML
// batch file and prints the decoded response, either as plain text or JSON.
//
// It exercises this module's codec end to end (Writer for the request,
// Reader/Pdu for the response) over one UDP round trip per target, with no
// retry, pooling, or scheduling — the long-lived session/poller layer is
// out of scope (spec.md §1 Non-goals).
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─────────────────────────────────────────────────────────────────────────────
// Batch file schema
// ─────────────────────────────────────────────────────────────────────────────

// RequestKind selects which PDU type runTarget sends for a target.
type RequestKind string

const (
	RequestGet     RequestKind = "get"
	RequestGetNext RequestKind = "getnext"
	RequestGetBulk RequestKind = "getbulk"
)

// Target is one entry of the batch file: a host to query, the request to
// send, and the OIDs to send it for.
type Target struct {
	Host           string      `yaml:"host"`
	Community      string      `yaml:"community"`
	Request        RequestKind `yaml:"request"`
	Oids           []string    `yaml:"oids"`
	NonRepeaters   uint32      `yaml:"non_repeaters"`
	MaxRepetitions uint32      `yaml:"max_repetitions"`
	TimeoutMs      int         `yaml:"timeout_ms"`
}

// BatchFile is the top-level shape of the YAML file passed on the command
// line.
type BatchFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadBatchFile reads and parses path, filling in the documented defaults
// (community "public", get request, 2000ms timeout) for any field the file
// omits, and accumulating every validation error before returning rather
// than stopping at the first one (idiom from the teacher's config.Load).
func LoadBatchFile(path string) (BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return BatchFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var errs []error
	for i := range bf.Targets {
		t := &bf.Targets[i]
		if t.Host == "" {
			errs = append(errs, fmt.Errorf("target %d: host is required", i))
		}
		if t.Community == "" {
			t.Community = "public"
		}
		if t.Request == "" {
			t.Request = RequestGet
		}
		if t.Request != RequestGet && t.Request != RequestGetNext && t.Request != RequestGetBulk {
			errs = append(errs, fmt.Errorf("target %d: unknown request kind %q", i, t.Request))
		}
		if len(t.Oids) == 0 {
			errs = append(errs, fmt.Errorf("target %d: at least one OID is required", i))
		}
		if t.TimeoutMs <= 0 {
			t.TimeoutMs = 2000
		}
	}
	if len(errs) > 0 {
		return BatchFile{}, fmt.Errorf("%d invalid target(s), first: %w", len(errs), errs[0])
	}
	return bf, nil
}

// ParseOid splits a dotted-decimal string like "1.3.6.1.2.1.1.1.0" into its
// sub-identifiers.
func ParseOid(s string) ([]uint32, error) {
	var ids []uint32
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if i == start {
				return nil, fmt.Errorf("oid %q: empty component", s)
			}
			var v uint64
			for _, c := range s[start:i] {
				if c < '0' || c > '9' {
					return nil, fmt.Errorf("oid %q: non-digit component %q", s, s[start:i])
				}
				v = v*10 + uint64(c-'0')
				if v > 1<<32-1 {
					return nil, fmt.Errorf("oid %q: component %q overflows uint32", s, s[start:i])
				}
			}
			ids = append(ids, uint32(v))
			start = i + 1
		}
	}
	return ids, nil
}
