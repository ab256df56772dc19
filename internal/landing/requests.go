package landing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/wolfman30/cosmo-wb-landing/internal/booking"
	"github.com/wolfman30/cosmo-wb-landing/internal/revenue"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 16 << 10

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("invalid request body")

// decodeJSON reads an optional JSON body into v. An empty body leaves v zero.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// amount is a calculator field sent either as a JSON number or as the raw
// text of a number input. Anything unusable decodes to 0.
type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amount(revenue.ParseAmount(s))
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = amount(revenue.SanitizeAmount(v))
	return nil
}

// viewport is a width in CSS pixels sent as a number or a string.
type viewport int

func (v *viewport) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = viewport(booking.ParseViewportWidth(s))
		return nil
	}
	*v = viewport(booking.ParseViewportWidth(string(data)))
	return nil
}

type dispatchRequest struct {
	ViewportWidth viewport `json:"viewport_width"`
	Href          string   `json:"href"`
	Tour          bool     `json:"tour"`
}

type storyCTARequest struct {
	ViewportWidth viewport `json:"viewport_width"`
}

type calculatorRequest struct {
	WeeklyRent    amount `json:"weekly_rent"`
	WeeklyRevenue amount `json:"weekly_revenue"`
}

func (c calculatorRequest) inputs() revenue.Inputs {
	return revenue.Inputs{WeeklyRent: float64(c.WeeklyRent), WeeklyRevenue: float64(c.WeeklyRevenue)}
}

type identityRequest struct {
	Choice string `json:"choice"`
}

// widthFor prefers the width in the body and falls back to client hints.
func widthFor(body viewport, r *http.Request) int {
	if body > 0 {
		return int(body)
	}
	return booking.ViewportWidthFromHeader(r.Header)
}
