package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	tls "github.com/refraction-networking/utls"

	"github.com/prospectkit/prospect/config"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2 (which Go's http.Transport cannot handle
	// over a utls connection).
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Page is one fetched and parsed page. It is ephemeral: owned by the call
// that produced it and discarded once the extractors have run.
type Page struct {
	Doc  *goquery.Document
	Body []byte
	URL  string
}

// Fetcher performs bounded-timeout GETs with a Chrome-like TLS fingerprint
// and browser-like headers. It is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	cfg    config.ScraperConfig
}

// NewFetcher creates a Fetcher from the scraper configuration.
func NewFetcher(cfg config.ScraperConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: cfg.PageTimeout}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("fetch: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}
	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		cfg: cfg,
	}
}

// Page fetches the URL within the configured page timeout and parses the
// response into a document. The error return makes the fail-open policy an
// explicit branch: callers treat any error as "no data for this page" and
// move on, they never abort a whole domain over it.
func (f *Fetcher) Page(ctx context.Context, rawURL string) (*Page, error) {
	return f.pageWithin(ctx, rawURL, f.cfg.PageTimeout)
}

func (f *Fetcher) pageWithin(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	body, ct, err := f.get(ctx, rawURL, timeout)
	if err != nil {
		return nil, err
	}
	if !isHTMLContentType(ct) {
		return nil, fmt.Errorf("fetch: non-html content-type %q for %s", ct, rawURL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", rawURL, err)
	}
	return &Page{Doc: doc, Body: body, URL: rawURL}, nil
}

// Raw fetches the URL within the page timeout and returns the raw body as a
// string, regardless of content type. Used by the enrichment fallback, which
// pattern-matches over whatever the search result serves.
func (f *Fetcher) Raw(ctx context.Context, rawURL string) (string, error) {
	body, _, err := f.get(ctx, rawURL, f.cfg.PageTimeout)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("fetch: HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("fetch: read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// isHTMLContentType returns true if the content-type header looks like HTML.
// An empty header is accepted: plenty of small company sites omit it.
func isHTMLContentType(ct string) bool {
	if ct == "" {
		return true
	}
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
