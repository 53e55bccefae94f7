package analyzer

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

const (
	maxBodyBytes      = 512 * 1024
	slowLoadThreshold = 3 * time.Second
)

// socialHosts are the platforms counted as social links.
var socialHosts = []string{
	"facebook.com", "instagram.com", "linkedin.com", "twitter.com",
	"x.com", "youtube.com", "tiktok.com", "yelp.com",
}

// techMarkers maps a body substring to a technology label.
var techMarkers = map[string]string{
	"wp-content":     "wordpress",
	"cdn.shopify":    "shopify",
	"wixstatic":      "wix",
	"squarespace":    "squarespace",
	"__next":         "nextjs",
	"data-reactroot": "react",
	"gtag(":          "google-analytics",
}

var copyrightYearRe = regexp.MustCompile(`(?:©|&copy;|copyright)\s*(\d{4})`)

// HTTPAnalyzer analyzes websites by fetching the homepage and inspecting
// response metadata and body signals. Outbound requests are rate limited
// per host to stay polite with shared hosting.
type HTTPAnalyzer struct {
	http        *http.Client
	ratePerHost rate.Limit
	now         func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures an HTTPAnalyzer.
type Option func(*HTTPAnalyzer)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *HTTPAnalyzer) { a.http = hc }
}

// WithRatePerHost sets the per-host request rate limit.
func WithRatePerHost(rps float64) Option {
	return func(a *HTTPAnalyzer) { a.ratePerHost = rate.Limit(rps) }
}

// WithNow sets a fixed clock for testing copyright-year staleness.
func WithNow(now func() time.Time) Option {
	return func(a *HTTPAnalyzer) { a.now = now }
}

// NewHTTPAnalyzer creates an analyzer with a sensible default HTTP client.
func NewHTTPAnalyzer(opts ...Option) *HTTPAnalyzer {
	a := &HTTPAnalyzer{
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		ratePerHost: 2,
		now:         time.Now,
		limiters:    make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches the homepage and classifies the site. An empty url
// returns a "none" analysis. Unreachable or error-status sites classify as
// "broken"; only request construction and context errors are returned as
// errors.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, rawURL string) (*model.WebsiteAnalysis, error) {
	if strings.TrimSpace(rawURL) == "" {
		return &model.WebsiteAnalysis{
			Status: model.WebsiteStatusNone,
			Issues: []string{"No website found"},
		}, nil
	}

	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "analyzer: parse url %s", rawURL)
	}

	if err := a.waitForHost(ctx, normalized); err != nil {
		return nil, eris.Wrap(err, "analyzer: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, eris.Wrap(err, "analyzer: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; LeadgenBot/1.0)")

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "analyzer: fetch canceled")
		}
		zap.L().Debug("analyzer: site unreachable",
			zap.String("url", normalized),
			zap.Error(err),
		)
		return &model.WebsiteAnalysis{
			Status: model.WebsiteStatusBroken,
			Issues: []string{"Website is unreachable"},
		}, nil
	}
	defer resp.Body.Close() //nolint:errcheck

	loadTime := time.Since(start)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	analysis := &model.WebsiteAnalysis{
		LoadTimeMS: loadTime.Milliseconds(),
		HasSSL:     resp.Request.URL.Scheme == "https",
	}

	if resp.StatusCode >= 400 {
		analysis.Status = model.WebsiteStatusBroken
		analysis.Issues = []string{fmt.Sprintf("Website returned HTTP %d", resp.StatusCode)}
		return analysis, nil
	}

	a.inspectBody(analysis, strings.ToLower(string(body)))
	a.deriveIssues(analysis, loadTime)
	a.classify(analysis, string(body))

	return analysis, nil
}

// waitForHost applies the per-host rate limiter.
func (a *HTTPAnalyzer) waitForHost(ctx context.Context, normalized string) error {
	u, err := url.Parse(normalized)
	if err != nil {
		return err
	}
	a.mu.Lock()
	lim, ok := a.limiters[u.Host]
	if !ok {
		lim = rate.NewLimiter(a.ratePerHost, 1)
		a.limiters[u.Host] = lim
	}
	a.mu.Unlock()
	return lim.Wait(ctx)
}

// inspectBody fills signal fields from the lower-cased homepage body.
func (a *HTTPAnalyzer) inspectBody(analysis *model.WebsiteAnalysis, lower string) {
	analysis.MobileResponsive = strings.Contains(lower, `name="viewport"`) ||
		strings.Contains(lower, `name='viewport'`)
	analysis.HasContactForm = strings.Contains(lower, "<form") &&
		(strings.Contains(lower, "contact") || strings.Contains(lower, "mailto:"))

	for marker, tech := range techMarkers {
		if strings.Contains(lower, marker) {
			analysis.Technologies = append(analysis.Technologies, tech)
		}
	}
	for _, host := range socialHosts {
		if strings.Contains(lower, host) {
			analysis.SocialLinks = append(analysis.SocialLinks, host)
		}
	}
}

// deriveIssues appends human-readable issues from the collected signals.
func (a *HTTPAnalyzer) deriveIssues(analysis *model.WebsiteAnalysis, loadTime time.Duration) {
	if !analysis.HasSSL {
		analysis.Issues = append(analysis.Issues, "No SSL certificate")
	}
	if loadTime > slowLoadThreshold {
		analysis.Issues = append(analysis.Issues, fmt.Sprintf("Slow page load (%.1fs)", loadTime.Seconds()))
	}
	if !analysis.MobileResponsive {
		analysis.Issues = append(analysis.Issues, "Not mobile responsive")
	}
	if !analysis.HasContactForm {
		analysis.Issues = append(analysis.Issues, "No contact form")
	}
}

// classify assigns the final status and score. A copyright notice three or
// more years old marks the site outdated.
func (a *HTTPAnalyzer) classify(analysis *model.WebsiteAnalysis, body string) {
	outdated := false
	if m := copyrightYearRe.FindStringSubmatch(strings.ToLower(body)); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			currentYear := a.now().Year()
			if year <= currentYear-3 {
				outdated = true
				analysis.Issues = append(analysis.Issues,
					fmt.Sprintf("Copyright notice from %d", year))
				updated := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
				analysis.LastUpdated = &updated
			}
		}
	}

	switch {
	case outdated:
		analysis.Status = model.WebsiteStatusOutdated
	case len(analysis.Issues) >= 3:
		analysis.Status = model.WebsiteStatusPoor
	default:
		analysis.Status = model.WebsiteStatusGood
	}

	score := 100 - 20*len(analysis.Issues)
	if score < 0 {
		score = 0
	}
	analysis.Score = float64(score)
}

// normalizeURL ensures the URL has a scheme and a host.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", eris.Errorf("url has no host: %s", raw)
	}
	return u.String(), nil
}
