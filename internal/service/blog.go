package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patelhettt/vulninsights/internal/feed"
	"github.com/patelhettt/vulninsights/internal/metrics"
	"github.com/patelhettt/vulninsights/internal/model"
)

// HomePostCount is the number of posts featured on the home page.
const HomePostCount = 4

// FeedFetcher fetches every configured author feed.
type FeedFetcher interface {
	FetchAll(ctx context.Context) ([]feed.AuthorFeed, error)
}

// FeedSnapshot is the result of one fetch cycle: the sorted posts and the
// slug index built over them. Fallback is set when placeholders were served.
type FeedSnapshot struct {
	Posts     []*model.BlogPost
	Index     *feed.Index
	Fallback  bool
	FetchedAt time.Time
}

type BlogService struct {
	fetcher    FeedFetcher
	normalizer feed.Normalizer
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewBlogService(fetcher FeedFetcher, normalizer feed.Normalizer) *BlogService {
	return &BlogService{
		fetcher:    fetcher,
		normalizer: normalizer,
		now:        time.Now,
	}
}

// Instrument records feed fetches on m.
func (s *BlogService) Instrument(m *metrics.Metrics) *BlogService {
	s.metrics = m
	return s
}

// Snapshot fetches both feeds and aggregates them. It never fails: when any
// feed cannot be fetched the placeholder posts are returned instead.
func (s *BlogService) Snapshot(ctx context.Context) *FeedSnapshot {
	now := s.now()

	feeds, err := s.fetcher.FetchAll(ctx)
	s.metrics.ObserveUpstream(metrics.UpstreamFeeds, err, s.now().Sub(now))
	if err != nil {
		slog.Warn("feed fetch failed, serving placeholder posts", "error", err)
		posts := feed.PlaceholderPosts(now)
		return &FeedSnapshot{
			Posts:     posts,
			Index:     feed.NewIndex(posts),
			Fallback:  true,
			FetchedAt: now,
		}
	}

	posts := s.normalizer.Aggregate(feeds)
	index := feed.NewIndex(posts)
	for _, c := range index.Collisions() {
		slog.Warn("duplicate post slug, keeping newest",
			"slug", c.Slug,
			"kept", c.Kept.Link,
			"dropped", c.Dropped.Link,
		)
	}

	s.metrics.ObserveAggregation(len(posts), len(index.Collisions()))
	slog.Debug("feeds aggregated", "feeds", len(feeds), "posts", len(posts))

	return &FeedSnapshot{
		Posts:     posts,
		Index:     index,
		FetchedAt: now,
	}
}

// Latest returns the newest n posts of a fresh snapshot.
func (s *BlogService) Latest(ctx context.Context, n int) ([]*model.BlogPost, bool) {
	snap := s.Snapshot(ctx)
	return feed.Latest(snap.Posts, n), snap.Fallback
}

// BlogListing is what the blogs page shows for one query.
type BlogListing struct {
	Query    feed.Query
	Posts    []*model.BlogPost
	Counts   map[string]int
	Total    int
	Fallback bool
}

// Search applies the author and term filters to a fresh snapshot. Counts are
// per author over the unfiltered list, for the author tabs.
func (s *BlogService) Search(ctx context.Context, q feed.Query) *BlogListing {
	snap := s.Snapshot(ctx)
	return &BlogListing{
		Query:    q,
		Posts:    feed.Filter(snap.Posts, q),
		Counts:   feed.CountByAuthor(snap.Posts),
		Total:    len(snap.Posts),
		Fallback: snap.Fallback,
	}
}

// Post resolves a reader URL parameter against a fresh snapshot.
func (s *BlogService) Post(ctx context.Context, slug string) (*model.BlogPost, error) {
	snap := s.Snapshot(ctx)
	post, err := snap.Index.Lookup(slug)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", slug, err)
	}
	return post, nil
}
