package scrapers

import (
  "testing"
  "time"

  "github.com/stretchr/testify/require"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
)

func TestDays(t *testing.T) {
  start, _ := ParseDate("2021-02-27")
  end, _ := ParseDate("2021-03-02")
  days := Days(start, end)
  require.Len(t, days, 3)
  require.Equal(t, "2021-02-27---2021-02-28", days[0].Name())
  require.Equal(t, end, days[2].End)

  require.Empty(t, Days(end, start))
}

func TestIntervals(t *testing.T) {
  start, _ := ParseDate("2021-01-01")
  end, _ := ParseDate("2021-01-11")
  windows := Intervals(start, end, 3)
  require.Len(t, windows, 3)
  require.Equal(t, start, windows[0].Start)
  require.Equal(t, windows[0].End, windows[1].Start)
  require.Equal(t, windows[1].End, windows[2].Start)
  require.Equal(t, end, windows[2].End)

  require.Nil(t, Intervals(start, end, 0))
  require.Nil(t, Intervals(end, start, 2))
}

func TestQueries(t *testing.T) {
  bbox := parsers.BoundingBox{West: 24.9, South: 60.15, East: 25.0, North: 60.2}
  require.Equal(t, "bounding_box:[24.90000 60.15000 25.00000 60.20000] -is:retweet -is:quote -is:reply", BboxQuery(bbox))
  require.Equal(t, "from:12345", UserQuery(" 12345 "))

  window := Window{Start: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)}
  require.Contains(t, window.Query("has:geo", config.DefaultSearchConfig()).String(), "2021-01-01T00:00:00Z")
}

func TestWindowNameBelowOneDay(t *testing.T) {
  start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
  windows := Intervals(start, start.AddDate(0, 0, 1), 4)
  require.Equal(t, "2021-01-01T00-00---2021-01-01T06-00", windows[0].Name())
  require.Equal(t, "2021-01-01T18-00---2021-01-02T00-00", windows[3].Name())
}
