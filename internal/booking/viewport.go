package booking

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Client hint headers a browser may send with its layout viewport width.
var viewportHeaders = []string{"Sec-CH-Viewport-Width", "Viewport-Width"}

// ParseViewportWidth reads a width reported by the client. Anything that is not
// a finite, non-negative number is treated as "no measurable viewport" (0).
func ParseViewportWidth(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// ViewportWidthFromHeader returns the first usable client hint width, or 0.
func ViewportWidthFromHeader(h http.Header) int {
	if h == nil {
		return 0
	}
	for _, key := range viewportHeaders {
		if w := ParseViewportWidth(h.Get(key)); w > 0 {
			return w
		}
	}
	return 0
}
