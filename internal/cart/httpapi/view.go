package httpapi

import (
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/session"
	"github.com/dwikikusuma/storefront/pkg/money"
)

type LineView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	LineTotal  int64  `json:"line_total"`
	PriceLabel string `json:"price_label"`
}

// View is the rendered cart panel.
type View struct {
	Badge        int                  `json:"badge"`
	Lines        []LineView           `json:"lines"`
	Total        int64                `json:"total"`
	TotalLabel   string               `json:"total_label"`
	Empty        bool                 `json:"empty"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

func ToView(s session.Snapshot, m *money.Formatter) View {
	lines := make([]LineView, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, LineView{
			ID:         l.ID,
			Name:       l.Name,
			Price:      l.Price,
			Quantity:   l.Quantity,
			LineTotal:  l.Total(),
			PriceLabel: m.Format(l.Price),
		})
	}
	return View{
		Badge:        s.Badge,
		Lines:        lines,
		Total:        s.Total,
		TotalLabel:   m.Format(s.Total),
		Empty:        len(lines) == 0,
		Notification: s.Notification,
	}
}
