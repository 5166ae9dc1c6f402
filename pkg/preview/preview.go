// Package preview fetches the page behind a link-mode submission so the UI can
// show what is being verified while the verdict is pending. Strictly
// best-effort: any failure just means no preview.
package preview

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/covered-news/covered/pkg/whttp"
)

const fetchTimeout = 10 * time.Second

type Preview struct {
	Title       string
	Description string
}

// Fetch downloads link and extracts its title and description.
func Fetch(ctx context.Context, link string) (*Preview, error) {
	client := whttp.NewClient(fetchTimeout)

	res, err := whttp.Send(ctx, &whttp.Request{
		Method:  "GET",
		URL:     link,
		Headers: []whttp.Header{{Name: "Accept", Value: "text/html"}},
	}, client)
	if err != nil {
		return nil, err
	}

	return Parse(res.Body)
}

// Parse extracts the preview fields from an HTML document.
func Parse(body []byte) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	p := &Preview{}
	p.Title = cleanText(doc.Find("title").First().Text())

	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		p.Description = cleanText(desc)
	}
	if p.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			p.Description = cleanText(desc)
		}
	}
	return p, nil
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.Join(strings.Fields(s), " ")
}
