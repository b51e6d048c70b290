// Package crawler harvests email addresses from external profile links.
//
// Crawling is low trust: the target is an arbitrary third-party site, so
// every failure degrades to partial results instead of propagating. The
// fan-out is bounded to one root fetch plus at most MaxFollowedLinks
// first-level links, which caps the latency and request volume any single
// profile can cost.
package crawler

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"igcollector/pkg/extract"
	"igcollector/pkg/logger"
)

// MaxFollowedLinks is the number of first-level outbound links followed
// beyond the root page.
const MaxFollowedLinks = 5

// maxBodyBytes caps how much of an untrusted response body is read.
const maxBodyBytes = 5 * 1024 * 1024

// Result holds everything a crawl found.
type Result struct {
	// Emails found on the root page and any followed link.
	Emails []string
	// Sources are the followed links that contributed emails.
	Sources []string
}

// Crawler fetches external pages and extracts emails from them.
type Crawler struct {
	httpClient *http.Client
	userAgent  string
	logger     logger.Logger
}

// New creates a Crawler with the given per-request timeout and client
// identifier.
func New(timeout time.Duration, userAgent string, log logger.Logger) *Crawler {
	if log == nil {
		log = logger.GetLogger()
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; EmailCollector/1.0)"
	}
	return &Crawler{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     log,
	}
}

// Crawl fetches url, extracts emails from its body and mailto links, then
// follows up to MaxFollowedLinks absolute outbound links and merges any
// emails they contain. It never fails: fetch errors at any stage degrade to
// whatever was collected so far, and an empty url returns empty results
// without any network call.
func (c *Crawler) Crawl(ctx context.Context, url string) Result {
	if url == "" {
		return Result{Emails: []string{}, Sources: []string{}}
	}

	body, ok := c.fetch(ctx, url)
	if !ok || body == "" {
		return Result{Emails: []string{}, Sources: []string{}}
	}

	emails := extract.Emails(body)
	var sources []string

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		c.logger.DebugWithFields("failed to parse page", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return Result{Emails: emails, Sources: []string{}}
	}

	emails = extract.Merge(emails, mailtoTargets(doc))

	for _, link := range outboundLinks(doc) {
		linkBody, ok := c.fetch(ctx, link)
		if !ok {
			continue
		}
		found := extract.Emails(linkBody)
		if len(found) == 0 {
			continue
		}
		emails = extract.Merge(emails, found)
		sources = append(sources, link)
	}

	sort.Strings(sources)
	if sources == nil {
		sources = []string{}
	}
	return Result{Emails: emails, Sources: sources}
}

// fetch retrieves a page body, treating any error or client/server error
// status as a miss.
func (c *Crawler) fetch(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugWithFields("crawl fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", false
	}
	return string(body), true
}

// mailtoTargets extracts addresses from mailto: anchors, dropping any query
// string (subject, body, etc).
func mailtoTargets(doc *goquery.Document) []string {
	var targets []string
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.Index(addr, "?"); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			targets = append(targets, addr)
		}
	})
	return targets
}

// outboundLinks collects absolute links in first-seen order, capped at
// MaxFollowedLinks.
func outboundLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || !strings.HasPrefix(href, "http") {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}
		links = append(links, href)
		return len(links) < MaxFollowedLinks
	})
	return links
}
