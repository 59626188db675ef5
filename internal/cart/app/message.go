package app

import (
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/money"
)

const closingLine = "Please contact me to confirm the order and arrange delivery."

// MessageTemplate renders the plain-text order summary handed to the
// messaging link. Lines are separated by "\n"; encoding is the caller's job.
type MessageTemplate struct {
	BusinessName string
	Money        *money.Formatter
}

func (t MessageTemplate) Order(lines domain.Lines) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I'd like to order the following products:\n\n", t.BusinessName)

	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, l.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", l.Quantity)
		fmt.Fprintf(&b, "   Price: %s\n\n", t.Money.Format(l.Total()))
	}

	fmt.Fprintf(&b, "Total Amount: %s\n\n", t.Money.Format(lines.Total()))
	b.WriteString(closingLine)
	return b.String()
}

// Purchase renders the single-item buy-now message.
func (t MessageTemplate) Purchase(item domain.LineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I'd like to purchase the following item:\n\n", t.BusinessName)
	fmt.Fprintf(&b, "Product: %s\n", item.Name)
	fmt.Fprintf(&b, "Quantity: %d\n", item.Quantity)
	fmt.Fprintf(&b, "Price: %s\n\n", t.Money.Format(item.Total()))
	b.WriteString(closingLine)
	return b.String()
}
