package scrapers

import (
  "fmt"
  "strings"
  "time"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
)

const (
  DateLayout   = "2006-01-02"
  MinuteLayout = "2006-01-02T15-04"
)

// SearchQuery is one full-archive search over the half-open window [Start, End).
type SearchQuery struct {
  Query          string
  Start          time.Time
  End            time.Time
  ResultsPerCall int
  MaxTweets      int
}

func (q SearchQuery) String() string {
  return fmt.Sprintf("%q [%s, %s)", q.Query, q.Start.Format(time.RFC3339), q.End.Format(time.RFC3339))
}

type Window struct {
  Start time.Time
  End   time.Time
}

// Name labels the window by day, or by minute when it does not start and end at midnight.
func (w Window) Name() string {
  layout := DateLayout
  if !isMidnight(w.Start) || !isMidnight(w.End) {
    layout = MinuteLayout
  }
  return w.Start.Format(layout) + "---" + w.End.Format(layout)
}

func isMidnight(t time.Time) bool {
  return t.Equal(t.Truncate(24 * time.Hour))
}

func (w Window) Query(query string, search config.SearchConfig) SearchQuery {
  return SearchQuery{
    Query:          query,
    Start:          w.Start,
    End:            w.End,
    ResultsPerCall: search.ResultsPerCall,
    MaxTweets:      search.MaxTweets,
  }
}

func ParseDate(value string) (time.Time, error) {
  return time.ParseInLocation(DateLayout, value, time.UTC)
}

func BboxQuery(bbox parsers.BoundingBox) string {
  return bbox.Query() + " -is:retweet -is:quote -is:reply"
}

func UserQuery(userID string) string {
  return "from:" + strings.TrimSpace(userID)
}

// Days splits [start, end) into whole days.
func Days(start, end time.Time) []Window {
  var windows []Window
  for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
    windows = append(windows, Window{Start: day, End: day.AddDate(0, 0, 1)})
  }
  return windows
}

// Intervals splits [start, end) into n equal windows. The last window always ends at end.
func Intervals(start, end time.Time, n int) []Window {
  if n < 1 || !start.Before(end) {
    return nil
  }
  step := end.Sub(start) / time.Duration(n)
  windows := make([]Window, n)
  for i := 0; i < n; i++ {
    windows[i] = Window{
      Start: start.Add(step * time.Duration(i)),
      End:   start.Add(step * time.Duration(i+1)),
    }
  }
  windows[n-1].End = end
  return windows
}
