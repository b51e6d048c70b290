package collector

import (
	"context"

	"igcollector/pkg/extract"
	"igcollector/pkg/logger"
)

// Resolver turns a handle into a ProfileRecord: fetch the public metadata,
// extract emails from the bio, crawl the external link if one is declared,
// and merge everything into one deduplicated email set.
type Resolver struct {
	fetcher ProfileFetcher
	crawler LinkCrawler
	logger  logger.Logger
}

// NewResolver creates a Resolver. The crawler may be nil to skip external
// link crawling entirely.
func NewResolver(fetcher ProfileFetcher, linkCrawler LinkCrawler, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Resolver{fetcher: fetcher, crawler: linkCrawler, logger: log}
}

// Resolve fetches and assembles the record for one handle. A fetch failure
// is returned as the typed upstream error so the batch runner can apply its
// retry policy; ErrorRecord converts an exhausted failure into the
// failure-shaped record.
//
// The privacy flag is self-reported by the upstream service and not
// enforced at this layer, so extraction runs regardless of it.
func (r *Resolver) Resolve(ctx context.Context, handle string) (*ProfileRecord, error) {
	profile, err := r.fetcher.FetchUserProfile(ctx, handle)
	if err != nil {
		return nil, err
	}

	bioEmails := extract.Emails(profile.Biography)

	var crawled struct {
		emails  []string
		sources []string
	}
	if r.crawler != nil && profile.ExternalURL != "" {
		result := r.crawler.Crawl(ctx, profile.ExternalURL)
		crawled.emails = result.Emails
		crawled.sources = result.Sources
	}

	emails := extract.Merge(bioEmails, crawled.emails)
	sources := crawled.sources
	if sources == nil {
		sources = []string{}
	}

	isPrivate := profile.IsPrivate
	rec := &ProfileRecord{
		Username:     profile.Username,
		FullName:     profile.FullName,
		Bio:          profile.Biography,
		ExternalURL:  profile.ExternalURL,
		IsPrivate:    &isPrivate,
		Emails:       emails,
		EmailSources: sources,
	}

	r.logger.DebugWithFields("resolved profile", map[string]interface{}{
		"username": rec.Username,
		"emails":   rec.EmailsCount(),
		"private":  isPrivate,
	})
	return rec, nil
}
