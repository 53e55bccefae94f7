package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestAnalyzer(opts ...Option) *HTTPAnalyzer {
	base := []Option{
		WithRatePerHost(1000), // no throttling in tests
		WithNow(func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }),
	}
	return NewHTTPAnalyzer(append(base, opts...)...)
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyze_EmptyURL(t *testing.T) {
	a := newTestAnalyzer()

	analysis, err := a.Analyze(context.Background(), "  ")
	require.NoError(t, err)

	assert.Equal(t, model.WebsiteStatusNone, analysis.Status)
	assert.Equal(t, []string{"No website found"}, analysis.Issues)
}

func TestAnalyze_HealthySite(t *testing.T) {
	srv := serveHTML(t, `<html><head><meta name="viewport" content="width=device-width"></head>
<body><form action="/contact">Contact us</form>
<script src="/wp-content/app.js"></script>
<a href="https://facebook.com/acme">fb</a>
&copy; 2026 Acme</body></html>`)

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	// Plain httptest server means no SSL, which is the only issue.
	assert.Equal(t, model.WebsiteStatusGood, analysis.Status)
	assert.True(t, analysis.MobileResponsive)
	assert.True(t, analysis.HasContactForm)
	assert.False(t, analysis.HasSSL)
	assert.Contains(t, analysis.Technologies, "wordpress")
	assert.Contains(t, analysis.SocialLinks, "facebook.com")
	assert.Equal(t, []string{"No SSL certificate"}, analysis.Issues)
	assert.Equal(t, 80.0, analysis.Score)
}

func TestAnalyze_PoorSite(t *testing.T) {
	srv := serveHTML(t, `<html><body>Welcome to our page</body></html>`)

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	// No SSL, not mobile responsive, no contact form.
	assert.Equal(t, model.WebsiteStatusPoor, analysis.Status)
	assert.Len(t, analysis.Issues, 3)
	assert.Equal(t, 40.0, analysis.Score)
}

func TestAnalyze_OutdatedCopyright(t *testing.T) {
	srv := serveHTML(t, `<html><head><meta name="viewport"></head>
<body><form>contact</form>Copyright 2021 Acme</body></html>`)

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, model.WebsiteStatusOutdated, analysis.Status)
	assert.Contains(t, analysis.Issues, "Copyright notice from 2021")
	require.NotNil(t, analysis.LastUpdated)
	assert.Equal(t, 2021, analysis.LastUpdated.Year())
}

func TestAnalyze_RecentCopyrightNotOutdated(t *testing.T) {
	srv := serveHTML(t, `<html><head><meta name="viewport"></head>
<body><form>contact</form>&copy; 2025 Acme</body></html>`)

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, model.WebsiteStatusGood, analysis.Status)
	assert.Nil(t, analysis.LastUpdated)
}

func TestAnalyze_ErrorStatusIsBroken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, model.WebsiteStatusBroken, analysis.Status)
	assert.Equal(t, []string{"Website returned HTTP 410"}, analysis.Issues)
}

func TestAnalyze_UnreachableIsBroken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAnalyzer()
	analysis, err := a.Analyze(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, model.WebsiteStatusBroken, analysis.Status)
	assert.Equal(t, []string{"Website is unreachable"}, analysis.Issues)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	srv := serveHTML(t, "<html></html>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAnalyzer()
	_, err := a.Analyze(ctx, srv.URL)
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		out     string
		wantErr bool
	}{
		{in: "acme.example", out: "https://acme.example"},
		{in: "  http://acme.example/path ", out: "http://acme.example/path"},
		{in: "https://acme.example", out: "https://acme.example"},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := normalizeURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.out, got)
	}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		analysis *model.WebsiteAnalysis
		expected model.Priority
	}{
		{nil, model.PriorityMedium},
		{&model.WebsiteAnalysis{Status: model.WebsiteStatusNone}, model.PriorityHigh},
		{&model.WebsiteAnalysis{Status: model.WebsiteStatusBroken}, model.PriorityHigh},
		{&model.WebsiteAnalysis{Status: model.WebsiteStatusPoor}, model.PriorityHigh},
		{&model.WebsiteAnalysis{Status: model.WebsiteStatusOutdated}, model.PriorityMedium},
		{&model.WebsiteAnalysis{Status: model.WebsiteStatusGood}, model.PriorityLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PriorityFor(tt.analysis))
	}
}
