package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patelhettt/vulninsights/internal/model"
)

// stubSource answers per handle; a nil feed with nil error blocks until ctx is done.
type stubSource struct {
	feeds map[string]*RawFeed
	errs  map[string]error
	calls atomic.Int32
}

func (s *stubSource) Fetch(ctx context.Context, author model.Author) (*RawFeed, error) {
	s.calls.Add(1)
	if err := s.errs[author.Handle]; err != nil {
		return nil, err
	}
	if feed, ok := s.feeds[author.Handle]; ok {
		return feed, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

var testAuthors = []model.Author{
	{Name: "Kaif", Handle: "SKaif009"},
	{Name: "Het", Handle: "hettt"},
}

func TestFetchAllKeepsAuthorOrder(t *testing.T) {
	src := &stubSource{feeds: map[string]*RawFeed{
		"SKaif009": {Items: []RawItem{{Title: "k1"}, {Title: "k2"}}},
		"hettt":    {Items: []RawItem{{Title: "h1"}}},
	}}

	feeds, err := NewFetcher(src, testAuthors).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, feeds, 2)

	assert.Equal(t, "Kaif", feeds[0].Author.Name)
	assert.Len(t, feeds[0].Feed.Items, 2)
	assert.Equal(t, "Het", feeds[1].Author.Name)
	assert.Equal(t, int32(2), src.calls.Load())

	posts := NewNormalizer(0).Aggregate(feeds)
	assert.Len(t, posts, 3)
}

func TestFetchAllFailsWhenOneFeedFails(t *testing.T) {
	boom := errors.New("connection reset")
	src := &stubSource{
		errs: map[string]error{"hettt": boom},
	}

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = NewFetcher(src, testAuthors).FetchAll(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("FetchAll did not cancel the pending fetch")
	}

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Het")
}

func TestFetchAllHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(&stubSource{}, testAuthors).FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseAuthors(t *testing.T) {
	authors, err := ParseAuthors("Kaif=SKaif009, Het=@hettt")
	require.NoError(t, err)
	assert.Equal(t, testAuthors, authors)

	for _, bad := range []string{"", "Kaif", "=hettt", "Het=", " , "} {
		_, err := ParseAuthors(bad)
		assert.Error(t, err, bad)
	}
}
