package feed

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/patelhettt/vulninsights/internal/model"
)

// AuthorFeed pairs a fetched feed with the author whose fetch produced it.
type AuthorFeed struct {
	Author model.Author
	Feed   *RawFeed
}

// Fetcher fetches every configured author's feed for one request.
type Fetcher struct {
	source  Source
	authors []model.Author
}

func NewFetcher(source Source, authors []model.Author) *Fetcher {
	return &Fetcher{
		source:  source,
		authors: authors,
	}
}

func (f *Fetcher) Authors() []model.Author {
	return f.authors
}

// FetchAll starts one fetch per author and waits for all of them. The first
// failure cancels the remaining fetches and fails the whole call; results are
// returned in author order regardless of completion order.
func (f *Fetcher) FetchAll(ctx context.Context) ([]AuthorFeed, error) {
	results := make([]AuthorFeed, len(f.authors))

	g, gctx := errgroup.WithContext(ctx)
	for i, author := range f.authors {
		g.Go(func() error {
			raw, err := f.source.Fetch(gctx, author)
			if err != nil {
				return fmt.Errorf("fetch %s feed: %w", author.Name, err)
			}
			results[i] = AuthorFeed{Author: author, Feed: raw}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
