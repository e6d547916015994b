// Package linkpreview fetches Open Graph metadata for URLs pasted into
// messages. Previews are an optional enhancement: every failure path
// returns nil rather than an error the send path would have to handle.
package linkpreview

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/vperic/linguachat/internal/domain"
	"golang.org/x/net/html"
)

const (
	fetchTimeout = 5 * time.Second
	maxBodySize  = 512 * 1024
)

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// ExtractURLs returns all http(s) URLs found in a message text.
func ExtractURLs(text string) []string {
	return urlRegex.FindAllString(text, -1)
}

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads the page and scrapes Open Graph tags, falling back to the
// <title> element. Returns nil when the page cannot be fetched or parsed.
func (f *Fetcher) Fetch(ctx context.Context, url string) *domain.LinkPreview {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "linguachat-preview/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "text/html") {
		return nil
	}

	preview := parse(io.LimitReader(resp.Body, maxBodySize), url)
	if preview == nil || (preview.Title == "" && preview.Description == "") {
		return nil
	}
	return preview
}

func parse(r io.Reader, url string) *domain.LinkPreview {
	doc, err := html.Parse(r)
	if err != nil {
		return nil
	}

	preview := &domain.LinkPreview{URL: url}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				prop := attr(n, "property")
				if prop == "" {
					prop = attr(n, "name")
				}
				content := attr(n, "content")
				switch prop {
				case "og:title":
					preview.Title = content
				case "og:description", "description":
					if preview.Description == "" {
						preview.Description = content
					}
				case "og:image":
					preview.Image = content
				case "og:site_name":
					preview.SiteName = content
				}
			case "title":
				if preview.Title == "" && n.FirstChild != nil {
					preview.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return preview
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
