package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

func TestHTTPStatusFromErr(t *testing.T) {
	t.Run("InvalidInput -> 400", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromErr(fmt.Errorf("id: %w", catalogapp.ErrInvalidInput))
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("BadRequest -> 400", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromErr(fmt.Errorf("decode: %w", ErrBadRequest))
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromErr(fmt.Errorf("buy now x: %w", catalogapp.ErrNotFound))
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("EmptyCart -> 422", func(t *testing.T) {
		gotStatus, gotCode, msg := httpStatusFromErr(checkoutapp.ErrEmptyCart)
		if gotStatus != http.StatusUnprocessableEntity || gotCode != "EMPTY_CART" || msg != "Your cart is empty" {
			t.Fatalf("got (%d,%s,%s)", gotStatus, gotCode, msg)
		}
	})

	t.Run("other error -> 500", func(t *testing.T) {
		gotStatus, gotCode, msg := httpStatusFromErr(errors.New("redis: connection refused"))
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
		if strings.Contains(msg, "redis") {
			t.Fatalf("internal detail leaked: %q", msg)
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, catalogapp.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "NOT_FOUND" || body["message"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		ID string `json:"id"`
	}

	t.Run("malformed -> bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		if err := DecodeJSON(r, &v); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("expected ErrBadRequest, got %v", err)
		}
	})

	t.Run("empty body ok", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		if err := DecodeJSON(r, &v); err != nil {
			t.Fatalf("unexpected err %v", err)
		}
	})

	t.Run("object", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"p1"}`))
		if err := DecodeJSON(r, &v); err != nil || v.ID != "p1" {
			t.Fatalf("got (%+v, %v)", v, err)
		}
	})
}

func TestQuantityClamp(t *testing.T) {
	cases := map[string]int{
		`{}`:                 1,
		`{"quantity":null}`:  1,
		`{"quantity":0}`:     1,
		`{"quantity":-4}`:    1,
		`{"quantity":3}`:     3,
		`{"quantity":99}`:    99,
		`{"quantity":150}`:   99,
		`{"quantity":1e9}`:   99,
		`{"quantity":"7"}`:   7,
		`{"quantity":"abc"}`: 1,
		`{"quantity":true}`:  1,
		`{"quantity":2.6}`:   2,
	}
	for in, want := range cases {
		var body struct {
			Quantity Quantity `json:"quantity"`
		}
		if err := json.Unmarshal([]byte(in), &body); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got := body.Quantity.Int(); got != want {
			t.Fatalf("%s: got %d, want %d", in, got, want)
		}
	}
}
