package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsUnwrapsWrappedPlatformError(t *testing.T) {
	base := New(CodeMissingSelection, "combo item needs a pick")
	wrapped := fmt.Errorf("pricing line 2: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error from wrapped chain")
	}
	if typed.Code() != CodeMissingSelection {
		t.Fatalf("expected MISSING_SELECTION, got %s", typed.Code())
	}
}

func TestAsReturnsNilForForeignError(t *testing.T) {
	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestMetadataForDomainCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeMissingSelection, http.StatusUnprocessableEntity},
		{CodeUnavailableSelection, http.StatusUnprocessableEntity},
		{CodeInvalidRule, http.StatusUnprocessableEntity},
		{CodeAmbiguousReference, http.StatusUnprocessableEntity},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestHasCode(t *testing.T) {
	err := Wrap(CodeUnavailableSelection, stdErrors.New("inactive"), "option gone")
	if !HasCode(err, CodeUnavailableSelection) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodeMissingSelection) {
		t.Fatal("expected HasCode to reject mismatched code")
	}
}
