package money

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders minor-unit integer amounts as "<CUR> 1,234" with no
// fractional digits.
type Formatter struct {
	currency string

	mu sync.Mutex
	p  *message.Printer
}

func NewFormatter(currency string) *Formatter {
	return &Formatter{
		currency: currency,
		p:        message.NewPrinter(language.English),
	}
}

func (f *Formatter) Format(amount int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Sprintf("%s %d", f.currency, amount)
}

func (f *Formatter) Currency() string {
	return f.currency
}
