package commands

import (
  "bytes"
  "testing"

  "github.com/stretchr/testify/require"

  "scraper.local/geotweets/parsers"
)

func TestPreview(t *testing.T) {
  table := parsers.NewTable()
  table.Append(
    parsers.Row{"id": "1", "text": "near", "geo.coordinates.x": 13.4, "geo.coordinates.y": 52.5},
    parsers.Row{"id": "2", "text": "nowhere"},
    parsers.Row{"id": "3", "text": "city", "geo.centroid.x": 13.0, "geo.centroid.y": 52.0},
  )

  var buf bytes.Buffer
  Preview(&buf, table, 1)
  out := buf.String()
  require.Contains(t, out, "near")
  require.Contains(t, out, "gps")
  require.NotContains(t, out, "nowhere")
  require.NotContains(t, out, "city")
}
