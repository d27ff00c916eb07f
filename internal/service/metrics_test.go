package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/patelhettt/vulninsights/internal/metrics"
)

func TestBlogServiceInstrumented(t *testing.T) {
	m := metrics.New()
	live := newTestBlogService(&stubFetcher{feeds: liveFeeds()}).Instrument(m)
	down := newTestBlogService(&stubFetcher{err: errors.New("bridge down")}).Instrument(m)

	live.Snapshot(context.Background())
	down.Snapshot(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(metrics.UpstreamFeeds, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(metrics.UpstreamFeeds, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackServed.WithLabelValues(metrics.UpstreamFeeds)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.PostsAggregated))
}

func TestToolsServiceInstrumented(t *testing.T) {
	m := metrics.New()
	s := NewToolsService(&stubRepos{err: errors.New("rate limited")}).Instrument(m)

	s.Tools(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(metrics.UpstreamGitHub, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackServed.WithLabelValues(metrics.UpstreamGitHub)))
}
