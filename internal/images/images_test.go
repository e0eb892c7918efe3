package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nivcodes/ainews/internal/core"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestImageFromDocument_OpenGraph(t *testing.T) {
	doc := docFrom(t, `<html><head>
<meta property="og:image" content="https://cdn.example.com/lead.jpg">
<meta property="og:image:alt" content="A robot arm">
</head><body></body></html>`)

	info, err := ImageFromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if info.URL != "https://cdn.example.com/lead.jpg" {
		t.Errorf("URL = %q", info.URL)
	}
	if info.Alt != "A robot arm" {
		t.Errorf("Alt = %q", info.Alt)
	}
	if info.Source != "og" {
		t.Errorf("Source = %q, want og", info.Source)
	}
}

func TestImageFromDocument_TwitterFallback(t *testing.T) {
	doc := docFrom(t, `<html><head>
<meta name="twitter:image" content="https://cdn.example.com/card.png">
</head><body></body></html>`)

	info, err := ImageFromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if info.URL != "https://cdn.example.com/card.png" {
		t.Errorf("URL = %q", info.URL)
	}
}

func TestImageFromDocument_PrefersOpenGraph(t *testing.T) {
	doc := docFrom(t, `<html><head>
<meta name="twitter:image" content="https://cdn.example.com/card.png">
<meta property="og:image" content="https://cdn.example.com/og.jpg">
</head><body></body></html>`)

	info, err := ImageFromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if info.URL != "https://cdn.example.com/og.jpg" {
		t.Errorf("URL = %q, want og:image to win", info.URL)
	}
}

func TestImageFromDocument_NoTags(t *testing.T) {
	doc := docFrom(t, `<html><head><title>bare</title></head><body></body></html>`)
	if _, err := ImageFromDocument(doc); err == nil {
		t.Fatal("expected error for a page without meta images")
	}
}

func TestEnrichAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/with-og":
			fmt.Fprint(w, `<html><head><meta property="og:image" content="https://cdn.example.com/x.jpg"></head><body></body></html>`)
		default:
			fmt.Fprint(w, `<html><head></head><body>nothing here</body></html>`)
		}
	}))
	defer server.Close()

	articles := []core.Article{
		{ID: "a1", URL: server.URL + "/with-og"},
		{ID: "a2", URL: server.URL + "/plain"},
		{ID: "a3", URL: server.URL + "/plain", ImageURL: "https://cdn.example.com/extracted.png"},
	}

	e := NewEnricher(5 * time.Second)
	got := e.EnrichAll(context.Background(), articles)

	if got[0].Image == nil || got[0].Image.URL != "https://cdn.example.com/x.jpg" {
		t.Errorf("a1 image = %+v, want og lookup result", got[0].Image)
	}
	if got[1].Image != nil {
		t.Errorf("a2 image = %+v, want nil", got[1].Image)
	}
	if got[2].Image == nil || got[2].Image.Source != "article" {
		t.Errorf("a3 image = %+v, want extracted image kept", got[2].Image)
	}
}
