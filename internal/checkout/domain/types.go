package domain

import (
	"net/url"
	"strings"
)

// Link is the outbound messaging hand-off: the readable message and the URL
// that carries it.
type Link struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Recipient identifies the messaging account that receives orders.
type Recipient struct {
	Host string
	ID   string
}

// NewLink builds https://<host>/<id>?text=<message> with the message
// percent-encoded; newlines become %0A and spaces %20.
func (r Recipient) NewLink(message string) Link {
	u := url.URL{
		Scheme:   "https",
		Host:     r.Host,
		Path:     "/" + r.ID,
		RawQuery: "text=" + encodeText(message),
	}
	return Link{URL: u.String(), Message: message}
}

// textEscaper turns query escaping into component escaping: spaces become
// %20 and the marks !'()* stay literal.
var textEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeText(s string) string {
	return textEscaper.Replace(url.QueryEscape(s))
}
