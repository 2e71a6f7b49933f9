package export

import (
	"context"
	"errors"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestKindFromError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ErrorKind("")},
		{NewError(KindValidation, "bad input", nil), KindValidation},
		{NewError(KindRender, "render blew up", errors.New("cause")), KindRender},
		{context.DeadlineExceeded, KindTimeout},
		{context.Canceled, KindCanceled},
		{errors.New("plain"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindFromError(tc.err); got != tc.want {
			t.Fatalf("KindFromError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestExportError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError(KindInternal, "artifact store put failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to unwrap")
	}
	if err.Error() != "artifact store put failed: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestAsGoError_MapsCategories(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want errorslib.Category
	}{
		{KindValidation, errorslib.CategoryValidation},
		{KindNotFound, errorslib.CategoryNotFound},
		{KindRender, errorslib.CategoryOperation},
		{KindInternal, errorslib.CategoryInternal},
	}
	for _, tc := range cases {
		ge := AsGoError(NewError(tc.kind, "boom", nil))
		if ge == nil {
			t.Fatalf("expected mapped error for %q", tc.kind)
		}
		if ge.Category != tc.want {
			t.Fatalf("kind %q mapped to %v, want %v", tc.kind, ge.Category, tc.want)
		}
	}
}

func TestAsGoError_PassesThroughExisting(t *testing.T) {
	original := errorslib.New("already mapped", errorslib.CategoryValidation)
	if got := AsGoError(original); got != original {
		t.Fatal("expected existing go-errors value to pass through")
	}
}
