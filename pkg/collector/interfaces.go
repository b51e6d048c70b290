package collector

import (
	"context"

	"igcollector/pkg/crawler"
	"igcollector/pkg/instagram"
)

// ProfileFetcher looks up public profile metadata for a handle.
type ProfileFetcher interface {
	FetchUserProfile(ctx context.Context, username string) (*instagram.Profile, error)
}

// LinkCrawler harvests emails from an external profile link.
type LinkCrawler interface {
	Crawl(ctx context.Context, url string) crawler.Result
}
