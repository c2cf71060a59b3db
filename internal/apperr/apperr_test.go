package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{InsufficientStock("x"), http.StatusBadRequest},
		{InvalidState("x"), http.StatusBadRequest},
		{Internal("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err).Status(); got != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", InvalidState("only approved requests can be fulfilled"))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("expected errors.Is to match ErrInvalidState")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("did not expect ErrNotFound to match")
	}
}

func TestFromStore(t *testing.T) {
	if err := FromStore(nil, "x"); err != nil {
		t.Fatalf("nil error mapped to %v", err)
	}
	if k := KindOf(FromStore(gorm.ErrRecordNotFound, "Branch not found")); k != KindNotFound {
		t.Errorf("kind = %v, want NotFound", k)
	}
	if k := KindOf(FromStore(errors.New("conn reset"), "x")); k != KindInternal {
		t.Errorf("kind = %v, want InternalError", k)
	}
	if k := KindOf(FromStore(Forbidden("nope"), "x")); k != KindForbidden {
		t.Errorf("kind = %v, want Forbidden", k)
	}
}
