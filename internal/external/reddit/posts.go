package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vulture/internal/contracts"
)

// maxPageSize is the largest listing page the API returns
const maxPageSize = 100

// deletedAuthor is the placeholder Reddit reports for removed accounts
const deletedAuthor = "[deleted]"

type listingResponse struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string   `json:"kind"`
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	Name         string  `json:"name"` // fullname, e.g. t3_abc123
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	URL          string  `json:"url"`
	Author       string  `json:"author"`
	Subreddit    string  `json:"subreddit"`
	CreatedUTC   float64 `json:"created_utc"`
}

// FetchPosts implements contracts.PostSource.
// Pages are followed with the after cursor until limit posts or an empty page.
func (c *Client) FetchPosts(ctx context.Context, category string, mode contracts.Mode, window string, limit int) ([]contracts.Post, error) {
	if _, ok := contracts.ParseMode(string(mode)); !ok {
		return nil, fmt.Errorf("unsupported listing mode %q", mode)
	}
	if limit <= 0 {
		return nil, nil
	}

	path := fmt.Sprintf("/r/%s/%s", url.PathEscape(category), mode)
	posts := make([]contracts.Post, 0, limit)
	after := ""

	for len(posts) < limit {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(min(limit-len(posts), maxPageSize)))
		params.Set("raw_json", "1")
		if mode == contracts.ModeTop && window != "" {
			params.Set("t", window)
		}
		if after != "" {
			params.Set("after", after)
		}

		var listing listingResponse
		if err := c.getJSON(ctx, path, params, &listing); err != nil {
			return nil, fmt.Errorf("fetch %s listing of r/%s: %w", mode, category, err)
		}

		for _, child := range listing.Data.Children {
			if child.Kind != "t3" {
				continue
			}
			posts = append(posts, toPost(child.Data, category))
			if len(posts) == limit {
				break
			}
		}

		if len(listing.Data.Children) == 0 || listing.Data.After == "" {
			break
		}
		after = listing.Data.After
	}

	c.logger.WithFields(map[string]interface{}{
		"category": category,
		"mode":     string(mode),
		"count":    len(posts),
	}).Debug("Listing fetched")

	return posts, nil
}

func toPost(d postData, category string) contracts.Post {
	author := d.Author
	if author == deletedAuthor {
		author = ""
	}

	body := d.Selftext
	if d.SelftextHTML != "" {
		if text, err := htmlToText(d.SelftextHTML); err == nil {
			body = text
		}
	}

	sec := int64(d.CreatedUTC)
	nsec := int64((d.CreatedUTC - float64(sec)) * float64(time.Second))

	return contracts.Post{
		ID:             d.Name,
		Title:          d.Title,
		Body:           body,
		URL:            d.URL,
		AuthorID:       author,
		CreatedAt:      time.Unix(sec, nsec).UTC(),
		SourceCategory: category,
	}
}

// htmlToText renders selftext_html as plain text, one line per block element
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse selftext html: %w", err)
	}

	doc.Find("p, li, br, pre, blockquote, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
