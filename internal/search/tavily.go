package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/pkg/tavily"
)

// directoryHosts are aggregator domains whose hits describe a listing, not
// the business's own site.
var directoryHosts = []string{
	"yelp.com", "yellowpages.com", "facebook.com", "tripadvisor.com",
	"google.com", "instagram.com", "linkedin.com", "angi.com",
}

// TavilySource adapts the Tavily web search client to the Source interface.
// It is the fallback source: web hits lack ratings and phone numbers, so
// leads found here score on fewer signals.
type TavilySource struct {
	client tavily.Client
}

// NewTavilySource creates the fallback source.
func NewTavilySource(client tavily.Client) *TavilySource {
	return &TavilySource{client: client}
}

// Name implements Source.
func (s *TavilySource) Name() string { return "tavily" }

// Search implements Source.
func (s *TavilySource) Search(ctx context.Context, query, location string, limit int) ([]model.BusinessCandidate, error) {
	resp, err := s.client.Search(ctx, fmt.Sprintf("%s businesses in %s", query, location), limit)
	if err != nil {
		return nil, eris.Wrap(err, "search: tavily search")
	}

	seen := make(map[string]bool)
	candidates := make([]model.BusinessCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		name := cleanTitle(r.Title)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		website := r.URL
		if isDirectory(website) {
			website = ""
		}
		seen[strings.ToLower(name)] = true
		candidates = append(candidates, model.BusinessCandidate{
			Name:    name,
			Website: website,
			PlaceID: "tavily:" + r.URL,
		})
		if limit > 0 && len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}

// cleanTitle strips common " - tagline" and " | site" suffixes from a page
// title to approximate the business name.
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " - ", " – ", " — "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}

func isDirectory(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	for _, d := range directoryHosts {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
