package exporters

import (
  "bytes"
  "context"
  "fmt"
  "io"
  "strings"

  log "github.com/sirupsen/logrus"

  "scraper.local/geotweets/parsers"
)

type Exporter interface {
  Extension() string
  Export(w io.Writer, table *parsers.Table) error
}

const (
  FormatCSV     = "csv"
  FormatParquet = "parquet"
  FormatGeoJSON = "geojson"
)

// ForFormat builds the exporter of a format. columns is the export order used by text formats.
func ForFormat(format string, columns []string) (Exporter, error) {
  switch strings.ToLower(strings.TrimSpace(format)) {
  case FormatCSV:
    return &CSVExporter{Columns: columns}, nil
  case FormatParquet:
    return &ParquetExporter{}, nil
  case FormatGeoJSON:
    return &GeoJSONExporter{}, nil
  }
  return nil, fmt.Errorf("unknown export format %q", format)
}

// Export writes table once per format as <prefix>.<extension> and returns the written keys.
func Export(ctx context.Context, store *Store, prefix string, table *parsers.Table, formats []string, columns []string) (keys []string, err error) {
  for _, format := range formats {
    exporter, err := ForFormat(format, columns)
    if err != nil {
      return keys, err
    }
    var buf bytes.Buffer
    if err := exporter.Export(&buf, table); err != nil {
      return keys, fmt.Errorf("export %s: %w", format, err)
    }
    key := prefix + "." + exporter.Extension()
    if err := store.Write(ctx, key, buf.Bytes()); err != nil {
      return keys, err
    }
    log.WithField("key", key).Infoln("exported rows:", table.Len())
    keys = append(keys, key)
  }
  return keys, nil
}
