package repositories

import (
  "context"
  "net/http"
  "net/http/httptest"
  "strings"
  "sync/atomic"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories/archives"
  "scraper.local/geotweets/repositories/exporters"
  "scraper.local/geotweets/repositories/scrapers"
)

const geoPage = `{
  "data":[{"id":"10","author_id":"A1","text":"hi","created_at":"2021-06-01T10:00:00.000Z","geo":{"place_id":"P1"}}],
  "includes":{
    "users":[{"id":"A1","username":"alice"}],
    "places":[{"id":"P1","full_name":"Berlin","geo":{"type":"Feature","bbox":[13.0,52.0,14.0,53.0]}}]
  },
  "meta":{"result_count":1}
}`

func newTestCollector(t *testing.T, handler http.HandlerFunc) *CollectorsRepository {
  server := httptest.NewServer(handler)
  t.Cleanup(server.Close)
  settings := &common.Settings{
    ApiUrl:        server.URL,
    Timeout:       5 * time.Second,
    Wait:          time.Millisecond,
    Cooldown:      time.Millisecond,
    Interval:      time.Millisecond,
    Tries:         1,
    ExportFormats: []string{exporters.FormatCSV, exporters.FormatParquet},
    ExportOrder:   "full",
  }
  store, err := exporters.NewStore(context.Background(), "", t.TempDir())
  require.NoError(t, err)
  t.Cleanup(func() { store.Close() })
  return &CollectorsRepository{
    Settings:         settings,
    SearchRepository: scrapers.NewSearchRepository(settings),
    TweetsRepository: &TweetsRepository{},
    RunsRepository:   &RunsRepository{},
    Store:            store,
  }
}

func testUnits(queries ...string) []*Unit {
  start, _ := scrapers.ParseDate("2021-06-01")
  windows := scrapers.Days(start, start.AddDate(0, 0, 2))
  return Units("tweets_", windows, queries, config.DefaultSearchConfig(), "")
}

func TestUnits(t *testing.T) {
  units := testUnits("a", "b")
  require.Len(t, units, 2)
  require.Equal(t, "tweets_2021-06-01---2021-06-02", units[0].Name)
  require.Len(t, units[0].Queries, 2)
  require.Equal(t, "b", units[0].Queries[1].Query)
  require.Equal(t, units[1].Queries[0].Start, units[0].Queries[0].End)
}

func TestCollect(t *testing.T) {
  var calls int32
  collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.Header().Set("Content-Type", "application/json")
    w.Write([]byte(geoPage))
  })
  unit := testUnits("bounding_box:[1 2 3 4]", "bounding_box:[5 6 7 8]")[0]

  ctx := context.Background()
  result, err := collector.Collect(ctx, unit)
  require.NoError(t, err)
  require.EqualValues(t, 2, atomic.LoadInt32(&calls))
  require.Equal(t, 2, result.Pages)
  require.Equal(t, 2, result.Fetched)
  require.Equal(t, 2, result.Merged)
  require.NotEmpty(t, result.RunID)
  require.Equal(t, []string{unit.Name + ".csv", unit.Name + ".parquet"}, result.Exports)

  data, err := collector.Store.Read(ctx, result.Archive)
  require.NoError(t, err)
  fragments, err := archives.Decode(data)
  require.NoError(t, err)
  require.Len(t, fragments, 6)

  csv, err := collector.Store.Read(ctx, unit.Name+".csv")
  require.NoError(t, err)
  lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
  require.Len(t, lines, 3)
  require.True(t, strings.HasPrefix(lines[0], "id;author_id;created_at"))

  table, err := exporters.Combine(ctx, collector.Store, "tweets_")
  require.NoError(t, err)
  require.Equal(t, 1, table.Len())
  require.Equal(t, "Berlin", table.Rows[0].String("geo.full_name"))
}

func TestCollectEmptyResult(t *testing.T) {
  collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    w.Write([]byte(`{"meta":{"result_count":0}}`))
  })
  unit := testUnits("has:geo")[0]

  result, err := collector.Collect(context.Background(), unit)
  require.NoError(t, err)
  require.Equal(t, 0, result.Merged)
  require.Empty(t, result.Exports)
  require.NotEmpty(t, result.Archive)
}

func TestCollectAllSkipFailed(t *testing.T) {
  var calls int32
  collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    if atomic.AddInt32(&calls, 1) == 1 {
      w.WriteHeader(http.StatusBadRequest)
      w.Write([]byte(`{"title":"Invalid Request"}`))
      return
    }
    assert.Equal(t, "2021-06-02T00:00:00Z", r.URL.Query().Get("start_time"))
    w.Write([]byte(geoPage))
  })

  results, err := collector.CollectAll(context.Background(), testUnits("has:geo"), true)
  require.NoError(t, err)
  require.Len(t, results, 2)
  require.Equal(t, 0, results[0].Merged)
  require.Equal(t, 1, results[1].Merged)
}

func TestCollectAllStopsOnFailure(t *testing.T) {
  var calls int32
  collector := newTestCollector(t, func(w http.ResponseWriter, r *http.Request) {
    atomic.AddInt32(&calls, 1)
    w.WriteHeader(http.StatusBadRequest)
  })

  results, err := collector.CollectAll(context.Background(), testUnits("has:geo"), false)
  require.Error(t, err)
  require.Contains(t, err.Error(), "tweets_2021-06-01---2021-06-02")
  require.Empty(t, results)
  require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCollectParams(t *testing.T) {
  params := &CollectParams{
    Queries:  []string{"from:11", "from:22"},
    Start:    "2021-06-01",
    End:      "2021-06-03",
    PerQuery: true,
    Prefix:   "users_",
  }
  parsed, err := ParseCollectParams(params.Params())
  require.NoError(t, err)
  require.Equal(t, params, parsed)

  units, err := parsed.Units(config.DefaultSearchConfig())
  require.NoError(t, err)
  require.Len(t, units, 4)
  require.Equal(t, "users_11_2021-06-01---2021-06-02", units[0].Name)
  require.Equal(t, "users_22_2021-06-02---2021-06-03", units[3].Name)

  parsed.PerQuery = false
  parsed.Bulk = true
  units, err = parsed.Units(config.DefaultSearchConfig())
  require.NoError(t, err)
  require.Len(t, units, 1)
  require.Len(t, units[0].Queries, 2)

  parsed.Bulk = false
  parsed.Intervals = 4
  windows, err := parsed.Windows()
  require.NoError(t, err)
  require.Len(t, windows, 4)

  parsed.End = parsed.Start
  _, err = parsed.Windows()
  require.Error(t, err)
}
