package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "unauthorized", err: E(KindUnauthorized, "who"), want: http.StatusUnauthorized},
		{name: "forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "not found", err: E(KindNotFound, "gone"), want: http.StatusNotFound},
		{name: "wrapped", err: fmt.Errorf("load: %w", E(KindNotFound, "gone")), want: http.StatusNotFound},
		{name: "plain", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: HTTPStatus() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrap: %w", EK(KindNotFound, " core.error.not_found ", "missing"))
	if got := LocalizationKey(err); got != "core.error.not_found" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "core.error.not_found")
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection refused")
	err := Wrap(KindUnavailable, "core.error.unavailable", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause")
	}
	if err.Error() != "connection refused" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "connection refused")
	}
	if KindOf(err) != KindUnavailable {
		t.Fatalf("KindOf() = %q, want %q", KindOf(err), KindUnavailable)
	}
}
