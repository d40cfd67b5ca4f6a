package covers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoCover is returned when a lookup finds no book with a cover.
var ErrNoCover = errors.New("no cover found")

// Finder looks up cover image URLs on OpenLibrary by title and author.
type Finder struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	limiter    *rate.Limiter
}

// NewFinder creates an OpenLibrary client limited to one request per second.
func NewFinder() *Finder {
	return &Finder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://openlibrary.org",
		coversURL:  "https://covers.openlibrary.org",
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// FindCoverURL returns the large cover URL of the search result that best
// matches title and author.
func (f *Finder) FindCoverURL(ctx context.Context, title, author string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title is required")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	q := title
	if author != "" {
		q = title + " " + author
	}
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=5", f.baseURL, url.QueryEscape(q))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	doc := bestMatch(result.Docs, title, author)
	if doc == nil {
		return "", fmt.Errorf("%w for %q", ErrNoCover, title)
	}
	if len(doc.ISBN) > 0 {
		return fmt.Sprintf("%s/b/isbn/%s-L.jpg", f.coversURL, doc.ISBN[0]), nil
	}
	return fmt.Sprintf("%s/b/id/%d-L.jpg", f.coversURL, doc.CoverI), nil
}

// bestMatch scores docs with a cover by title and author similarity.
func bestMatch(docs []searchDoc, title, author string) *searchDoc {
	titleLower := strings.ToLower(title)
	authorLower := strings.ToLower(author)

	var best *searchDoc
	bestScore := -1

	for i := range docs {
		doc := &docs[i]
		if doc.CoverI == 0 && len(doc.ISBN) == 0 {
			continue
		}

		score := 0
		if strings.ToLower(doc.Title) == titleLower {
			score += 10
		} else if strings.Contains(strings.ToLower(doc.Title), titleLower) {
			score += 5
		}

		if author != "" {
			for _, docAuthor := range doc.AuthorName {
				a := strings.ToLower(docAuthor)
				if a == authorLower {
					score += 10
					break
				} else if strings.Contains(a, authorLower) {
					score += 5
					break
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = doc
		}
	}
	return best
}

type searchResult struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	ISBN       []string `json:"isbn"`
	CoverI     int      `json:"cover_i"`
}
