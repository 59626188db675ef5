package domain

// LineItem is one product in the cart with its aggregated quantity.
// Price is in minor currency units.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

func (l LineItem) Total() int64 {
	return l.Price * int64(l.Quantity)
}

// Lines is the cart state in insertion order, unique by ID.
type Lines []LineItem

func (ls Lines) Index(id string) int {
	for i := range ls {
		if ls[i].ID == id {
			return i
		}
	}
	return -1
}

func (ls Lines) Total() int64 {
	var total int64
	for _, l := range ls {
		total += l.Total()
	}
	return total
}

func (ls Lines) Count() int {
	n := 0
	for _, l := range ls {
		n += l.Quantity
	}
	return n
}

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyInfo    NotificationType = "info"
	NotifyError   NotificationType = "error"
)

type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}
