package domain

import (
	"net/url"
	"strings"
	"testing"
)

func TestNewLink(t *testing.T) {
	r := Recipient{Host: "wa.me", ID: "254754516464"}

	link := r.NewLink("Hello Shop! 1. Box & Ridge\n   Quantity: 2")

	const prefix = "https://wa.me/254754516464?text="
	if !strings.HasPrefix(link.URL, prefix) {
		t.Fatalf("unexpected url %q", link.URL)
	}
	text := strings.TrimPrefix(link.URL, prefix)
	if !strings.Contains(text, "%0A") {
		t.Fatalf("newline not encoded as %%0A: %q", text)
	}
	if strings.ContainsAny(text, " +&\n") {
		t.Fatalf("unencoded characters in %q", text)
	}

	u, err := url.Parse(link.URL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := u.Query().Get("text"); got != link.Message {
		t.Fatalf("round trip got %q, want %q", got, link.Message)
	}
}

func TestNewLinkEscapesLikeURIComponent(t *testing.T) {
	r := Recipient{Host: "wa.me", ID: "254754516464"}

	cases := []struct {
		in   string
		want string
	}{
		{in: "Hello Shop!", want: "Hello%20Shop!"},
		{in: "I'd like (2) * sheets", want: "I'd%20like%20(2)%20*%20sheets"},
		{in: "a+b=c&d", want: "a%2Bb%3Dc%26d"},
		{in: "50% off %21", want: "50%25%20off%20%2521"},
		{in: "line\nnext ~_.-", want: "line%0Anext%20~_.-"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			link := r.NewLink(tc.in)
			if want := "https://wa.me/254754516464?text=" + tc.want; link.URL != want {
				t.Fatalf("got %q, want %q", link.URL, want)
			}
			u, err := url.Parse(link.URL)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := u.Query().Get("text"); got != tc.in {
				t.Fatalf("round trip got %q, want %q", got, tc.in)
			}
		})
	}
}
