package repositories

import (
  "scraper.local/geotweets/repositories/scrapers"
)

// Unit is one collection: every query in it shares a time window and is merged into one table.
type Unit struct {
  Name    string
  Queries []scrapers.SearchQuery
  Order   string
}

type CollectedPayload struct {
  Unit  string `json:"unit"`
  RunID string `json:"run_id"`
  Count int    `json:"count"`
  Order string `json:"order"`
}

type CollectResult struct {
  RunID   string
  Pages   int
  Fetched int
  Merged  int
  Archive string
  Exports []string
}
