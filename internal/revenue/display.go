package revenue

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatDollars renders a whole-dollar amount with grouping, e.g. "$9,555".
func FormatDollars(n int64) string {
	if n < 0 {
		// uint64 keeps math.MinInt64 from overflowing on negation.
		return "-$" + printer.Sprintf("%d", uint64(-(n+1))+1)
	}
	return "$" + printer.Sprintf("%d", n)
}

// Display is the text the card shows for one state of the calculator.
type Display struct {
	Inputs        Inputs `json:"inputs"`
	Promo         bool   `json:"promo"`
	Result        Result `json:"result"`
	Heading       string `json:"heading"`
	Estimated     string `json:"estimated"`
	DeltaLine     string `json:"delta_line,omitempty"`
	AdvantageLine string `json:"advantage_line,omitempty"`
	ButtonLabel   string `json:"button_label"`
}

// Render builds the card text. Delta lines only appear with the promo applied.
func (c Calculator) Render(in Inputs, promo bool) Display {
	in = in.Sanitize()
	res := c.Compute(in)
	d := Display{
		Inputs:      in,
		Promo:       promo,
		Result:      res,
		Heading:     "Estimated Monthly Take-Home (Standard)",
		Estimated:   FormatDollars(res.Estimated(promo)),
		ButtonLabel: fmt.Sprintf("Apply %d-Week Move-In Special", c.FreeWeeks()),
	}
	if promo {
		d.Heading = "Estimated Monthly Take-Home (Year 1 w/ Promo)"
		d.DeltaLine = "+" + FormatDollars(res.MonthlyDelta) + " / month"
		d.AdvantageLine = FormatDollars(res.AnnualDelta) + " first-year advantage"
		d.ButtonLabel = fmt.Sprintf("✓ %d Weeks Free Applied", c.FreeWeeks())
	}
	return d
}
