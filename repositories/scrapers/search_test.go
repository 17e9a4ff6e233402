package scrapers

import (
  "context"
  "net/http"
  "net/http/httptest"
  "sync/atomic"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "scraper.local/geotweets/common"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *SearchRepository {
  server := httptest.NewServer(handler)
  t.Cleanup(server.Close)
  return NewSearchRepository(&common.Settings{
    BearerToken: "secret",
    ApiUrl:      server.URL,
    Timeout:     5 * time.Second,
    Wait:        time.Millisecond,
    Cooldown:    2 * time.Millisecond,
    Interval:    time.Millisecond,
    Tries:       3,
  })
}

func testQuery() SearchQuery {
  start, _ := ParseDate("2021-06-01")
  return SearchQuery{
    Query:          "has:geo",
    Start:          start,
    End:            start.AddDate(0, 0, 1),
    ResultsPerCall: 100,
    MaxTweets:      1000,
  }
}

func TestFetchFollowsNextToken(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    assert.Equal(t, "/2/tweets/search/all", r.URL.Path)
    assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
    assert.Equal(t, "has:geo", r.URL.Query().Get("query"))
    assert.Equal(t, "2021-06-01T00:00:00Z", r.URL.Query().Get("start_time"))
    assert.Equal(t, "2021-06-02T00:00:00Z", r.URL.Query().Get("end_time"))
    assert.Equal(t, "100", r.URL.Query().Get("max_results"))
    assert.NotEmpty(t, r.URL.Query().Get("expansions"))

    w.Header().Set("Content-Type", "application/json")
    if r.URL.Query().Get("next_token") == "" {
      w.Write([]byte(`{"data":[{"id":"1","author_id":"A1"}],"includes":{"users":[{"id":"A1"}]},"meta":{"result_count":1,"next_token":"t2"}}`))
      return
    }
    assert.Equal(t, "t2", r.URL.Query().Get("next_token"))
    w.Write([]byte(`{"data":[{"id":"2","author_id":"A1"}],"includes":{"users":[{"id":"A1"}]},"meta":{"result_count":1}}`))
  })

  pages, err := repository.Fetch(context.Background(), testQuery())
  require.NoError(t, err)
  require.Len(t, pages, 2)
  require.Equal(t, int32(2), atomic.LoadInt32(&calls))
  require.Equal(t, "1", pages[0].Entities[0].Get("id").String())
  require.Equal(t, "2", pages[1].Entities[0].Get("id").String())
}

func TestFetchStopsAtMaxTweets(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.Write([]byte(`{"data":[{"id":"1"},{"id":"2"}],"meta":{"result_count":2,"next_token":"more"}}`))
  })
  query := testQuery()
  query.MaxTweets = 4

  pages, err := repository.Fetch(context.Background(), query)
  require.NoError(t, err)
  require.Len(t, pages, 2)
  require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchFailsOnLaterPage(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    if r.URL.Query().Get("next_token") == "" {
      w.Write([]byte(`{"data":[{"id":"1","author_id":"A1"}],"meta":{"result_count":1,"next_token":"t2"}}`))
      return
    }
    w.WriteHeader(http.StatusServiceUnavailable)
  })

  pages, err := repository.Fetch(context.Background(), testQuery())
  require.Nil(t, pages)
  var status *StatusError
  require.ErrorAs(t, err, &status)
  require.Equal(t, http.StatusServiceUnavailable, status.Status)
  require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchWithRetryRecovers(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    if atomic.AddInt32(&calls, 1) == 1 {
      w.WriteHeader(http.StatusServiceUnavailable)
      return
    }
    w.Write([]byte(`{"meta":{"result_count":0}}`))
  })

  pages, err := repository.FetchWithRetry(context.Background(), testQuery())
  require.NoError(t, err)
  require.Len(t, pages, 1)
  require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchWithRetryExhausted(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.WriteHeader(http.StatusTooManyRequests)
  })

  _, err := repository.FetchWithRetry(context.Background(), testQuery())
  require.ErrorIs(t, err, ErrRateLimited)
  require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchWithRetryPermanent(t *testing.T) {
  var calls int32
  repository := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.WriteHeader(http.StatusBadRequest)
    w.Write([]byte(`{"title":"Invalid Request"}`))
  })

  _, err := repository.FetchWithRetry(context.Background(), testQuery())
  require.Error(t, err)
  require.False(t, IsTransient(err))
  require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCooldown(t *testing.T) {
  repository := NewSearchRepository(&common.Settings{Wait: 15 * time.Second, Cooldown: 18 * time.Second})
  require.Equal(t, 18*time.Second, repository.Cooldown(0))
  require.Equal(t, 18*time.Second, repository.Cooldown(499))
  require.Equal(t, 15*time.Second, repository.Cooldown(500))
}
