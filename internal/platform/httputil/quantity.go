package httputil

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Quantity is a user-entered quantity. It accepts a JSON number or numeric
// string; anything else reads as 1. Values are clamped to [1, 99].
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity(parseQuantity(b))
	return nil
}

func (q Quantity) Int() int {
	return ClampQuantity(int(q))
}

func ClampQuantity(n int) int {
	return min(max(n, MinQuantity), MaxQuantity)
}

func parseQuantity(b []byte) int {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return MinQuantity
		}
		b = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) {
		return MinQuantity
	}
	switch {
	case f >= MaxQuantity:
		return MaxQuantity
	case f < MinQuantity:
		return MinQuantity
	}
	return ClampQuantity(int(f))
}
