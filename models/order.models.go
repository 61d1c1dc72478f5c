package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every order
var TaxRate = decimal.RequireFromString("0.10")

// OrderLine is a priced cart line
type OrderLine struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderSummary holds the totals for a cart. Amounts are unrounded; round
// only when formatting.
type OrderSummary struct {
	Lines      []OrderLine
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Totals prices every line at its effective price and applies tax
func (c *Cart) Totals() OrderSummary {
	summary := OrderSummary{
		Subtotal: decimal.Zero,
	}
	if c == nil {
		summary.Tax = decimal.Zero
		summary.GrandTotal = decimal.Zero
		return summary
	}
	for _, line := range c.Lines {
		unit := line.Product.EffectivePrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		summary.Lines = append(summary.Lines, OrderLine{
			ProductID: line.Product.ID.Hex(),
			Title:     line.Product.Title,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
	}
	summary.Tax = summary.Subtotal.Mul(TaxRate)
	summary.GrandTotal = summary.Subtotal.Add(summary.Tax)
	return summary
}

// Money formats an amount with two fraction digits and a dollar sign
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// PlainText renders the order summary sent in the confirmation email
func (s OrderSummary) PlainText() string {
	var b strings.Builder
	b.WriteString("Your Order Details:\n\n")
	for _, line := range s.Lines {
		fmt.Fprintf(&b, "Title: %s\nQuantity: %d\nPrice: %s\nLine Total: %s\n\n",
			line.Title, line.Quantity, Money(line.UnitPrice), Money(line.LineTotal))
	}
	fmt.Fprintf(&b, "Subtotal: %s\nTax (%s%%): %s\nGrand Total: %s\n",
		Money(s.Subtotal), TaxRate.Shift(2).String(), Money(s.Tax), Money(s.GrandTotal))
	return b.String()
}
