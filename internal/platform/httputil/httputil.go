package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

const maxBodyBytes = 1 << 20

// ErrBadRequest marks malformed request bodies and parameters.
var ErrBadRequest = errors.New("bad request")

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("response encode failed", slog.Any("err", err))
	}
}

// WriteError maps err to a status and writes {"error": CODE, "message": ...}.
// Internal errors do not leak their text.
func WriteError(w http.ResponseWriter, err error) {
	status, code, msg := httpStatusFromErr(err)
	WriteJSON(w, status, errorBody{Error: code, Message: msg})
}

func httpStatusFromErr(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "EMPTY_CART", "Your cart is empty"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

// DecodeJSON reads a single JSON object from the request body into v. An
// empty body leaves v untouched.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode body: %v: %w", err, ErrBadRequest)
	}
	return nil
}
