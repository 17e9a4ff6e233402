package repositories

import (
  "encoding/json"
  "errors"
  "fmt"
  "strings"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories/scrapers"
)

// CollectParams is the stored form of a collection task.
type CollectParams struct {
  Queries   []string `json:"queries"`
  Start     string   `json:"start"`
  End       string   `json:"end"`
  Intervals int      `json:"intervals,omitempty"`
  Bulk      bool     `json:"bulk,omitempty"`
  PerQuery  bool     `json:"per_query,omitempty"`
  Prefix    string   `json:"prefix"`
  Order     string   `json:"order,omitempty"`
}

func ParseCollectParams(params map[string]interface{}) (*CollectParams, error) {
  buf, err := json.Marshal(params)
  if err != nil {
    return nil, err
  }
  var p CollectParams
  if err := json.Unmarshal(buf, &p); err != nil {
    return nil, fmt.Errorf("decode collect params: %w", err)
  }
  return &p, nil
}

func (p *CollectParams) Params() map[string]interface{} {
  buf, _ := json.Marshal(p)
  params := map[string]interface{}{}
  json.Unmarshal(buf, &params)
  return params
}

// Windows splits [start, end) into one bulk window, n intervals or whole days.
func (p *CollectParams) Windows() ([]scrapers.Window, error) {
  start, err := scrapers.ParseDate(p.Start)
  if err != nil {
    return nil, fmt.Errorf("start date: %w", err)
  }
  end, err := scrapers.ParseDate(p.End)
  if err != nil {
    return nil, fmt.Errorf("end date: %w", err)
  }
  if !start.Before(end) {
    return nil, fmt.Errorf("start %s is not before end %s", p.Start, p.End)
  }
  switch {
  case p.Bulk:
    return []scrapers.Window{{Start: start, End: end}}, nil
  case p.Intervals > 0:
    return scrapers.Intervals(start, end, p.Intervals), nil
  }
  return scrapers.Days(start, end), nil
}

func (p *CollectParams) Units(search config.SearchConfig) ([]*Unit, error) {
  if len(p.Queries) == 0 {
    return nil, errors.New("no queries to collect")
  }
  windows, err := p.Windows()
  if err != nil {
    return nil, err
  }
  prefix := p.Prefix
  if prefix == "" {
    prefix = search.FilenamePrefix
  }
  if !p.PerQuery {
    return Units(prefix, windows, p.Queries, search, p.Order), nil
  }
  var units []*Unit
  for _, query := range p.Queries {
    units = append(units, Units(prefix+QueryLabel(query)+"_", windows, []string{query}, search, p.Order)...)
  }
  return units, nil
}

var labelReplacer = strings.NewReplacer(":", "_", " ", "_", "[", "", "]", "", "/", "_", "\"", "")

// QueryLabel turns a query into a file name fragment. User queries keep only the user id.
func QueryLabel(query string) string {
  return labelReplacer.Replace(strings.TrimPrefix(strings.TrimSpace(query), "from:"))
}
