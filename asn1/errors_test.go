package asn1_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vpbank/snmpcodec/asn1"
)

func TestErrorIsComparable(t *testing.T) {
	if asn1.ErrEof != asn1.ErrEof {
		t.Fatal("same error constant should compare equal")
	}
	if asn1.ErrEof == asn1.ErrInvalidLen {
		t.Fatal("distinct error constants should not compare equal")
	}
}

func TestErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("reading field: %w", asn1.ErrWrongType)
	if !errors.Is(wrapped, asn1.ErrWrongType) {
		t.Fatal("errors.Is should see through %w wrapping")
	}
	if errors.Is(wrapped, asn1.ErrEof) {
		t.Fatal("errors.Is should not match an unrelated sentinel")
	}
}
