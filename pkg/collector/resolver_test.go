package collector

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igcollector/pkg/crawler"
	errs "igcollector/pkg/errors"
	"igcollector/pkg/instagram"
	"igcollector/pkg/logger"
)

type stubFetcher struct {
	profiles map[string]*instagram.Profile
	errors   map[string]error
	calls    int
}

func (f *stubFetcher) FetchUserProfile(ctx context.Context, username string) (*instagram.Profile, error) {
	f.calls++
	if err, ok := f.errors[username]; ok {
		return nil, err
	}
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return nil, errs.New(errs.ErrorTypeNotFound, http.StatusNotFound, "profile %q not found", username)
}

type stubCrawler struct {
	results map[string]crawler.Result
	calls   int
}

func (c *stubCrawler) Crawl(ctx context.Context, url string) crawler.Result {
	c.calls++
	if r, ok := c.results[url]; ok {
		return r
	}
	return crawler.Result{Emails: []string{}, Sources: []string{}}
}

func TestResolveBioAndLinkUnion(t *testing.T) {
	fetcher := &stubFetcher{profiles: map[string]*instagram.Profile{
		"nike": {
			Username:    "nike",
			FullName:    "Nike",
			Biography:   "Just Do It. press@nike.com",
			ExternalURL: "https://nike.com",
		},
	}}
	linkCrawler := &stubCrawler{results: map[string]crawler.Result{
		"https://nike.com": {
			Emails:  []string{"press@nike.com", "support@nike.com"},
			Sources: []string{"https://nike.com/contact"},
		},
	}}
	resolver := NewResolver(fetcher, linkCrawler, logger.NewTestLogger())

	rec, err := resolver.Resolve(context.Background(), "nike")
	require.NoError(t, err)

	assert.Equal(t, "nike", rec.Username)
	assert.Equal(t, []string{"press@nike.com", "support@nike.com"}, rec.Emails)
	assert.Equal(t, []string{"https://nike.com/contact"}, rec.EmailSources)
	require.NotNil(t, rec.IsPrivate)
	assert.False(t, *rec.IsPrivate)
	assert.False(t, rec.Failed())
}

func TestResolveNoExternalURLSkipsCrawl(t *testing.T) {
	fetcher := &stubFetcher{profiles: map[string]*instagram.Profile{
		"plain": {Username: "plain", Biography: "hi@example.com"},
	}}
	linkCrawler := &stubCrawler{}
	resolver := NewResolver(fetcher, linkCrawler, logger.NewTestLogger())

	rec, err := resolver.Resolve(context.Background(), "plain")
	require.NoError(t, err)

	assert.Equal(t, 0, linkCrawler.calls)
	assert.Equal(t, []string{"hi@example.com"}, rec.Emails)
	assert.Equal(t, []string{}, rec.EmailSources)
}

func TestResolveNilCrawler(t *testing.T) {
	fetcher := &stubFetcher{profiles: map[string]*instagram.Profile{
		"linked": {Username: "linked", ExternalURL: "https://example.com"},
	}}
	resolver := NewResolver(fetcher, nil, logger.NewTestLogger())

	rec, err := resolver.Resolve(context.Background(), "linked")
	require.NoError(t, err)

	assert.Equal(t, []string{}, rec.Emails)
	assert.Equal(t, []string{}, rec.EmailSources)
}

func TestResolvePrivateProfileStillExtracts(t *testing.T) {
	fetcher := &stubFetcher{profiles: map[string]*instagram.Profile{
		"closed": {Username: "closed", Biography: "dm me: closed@example.com", IsPrivate: true},
	}}
	resolver := NewResolver(fetcher, nil, logger.NewTestLogger())

	rec, err := resolver.Resolve(context.Background(), "closed")
	require.NoError(t, err)

	require.NotNil(t, rec.IsPrivate)
	assert.True(t, *rec.IsPrivate)
	assert.Equal(t, []string{"closed@example.com"}, rec.Emails)
}

func TestResolveFetchFailureReturnsTypedError(t *testing.T) {
	resolver := NewResolver(&stubFetcher{}, nil, logger.NewTestLogger())

	rec, err := resolver.Resolve(context.Background(), "ghost_user_404")
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, errs.ErrorTypeNotFound, errs.TypeOf(err))
}

func TestErrorRecordShape(t *testing.T) {
	rec := ErrorRecord("ghost_user_404", errs.New(errs.ErrorTypeNotFound, 404, "profile not found"))

	assert.Equal(t, "ghost_user_404", rec.Username)
	assert.True(t, rec.Failed())
	assert.NotEmpty(t, rec.Error)
	assert.Equal(t, []string{}, rec.Emails)
	assert.Equal(t, []string{}, rec.EmailSources)
	assert.Nil(t, rec.IsPrivate)
	assert.Equal(t, 0, rec.EmailsCount())
}
