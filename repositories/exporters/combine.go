package exporters

import (
  "context"

  log "github.com/sirupsen/logrus"

  "scraper.local/geotweets/parsers"
)

// Combine merges every parquet snapshot under prefix into one table, keeping the first copy of each tweet.
func Combine(ctx context.Context, store *Store, prefix string) (*parsers.Table, error) {
  keys, err := store.List(ctx, prefix, ".parquet")
  if err != nil {
    return nil, err
  }
  var tables []*parsers.Table
  for _, key := range keys {
    data, err := store.Read(ctx, key)
    if err != nil {
      return nil, err
    }
    table, err := ReadParquet(data)
    if err != nil {
      log.WithField("key", key).Warnln("skipping unreadable snapshot:", err)
      continue
    }
    log.WithField("key", key).Infoln("rows:", table.Len())
    tables = append(tables, table)
  }
  return parsers.Concat(tables...).DropDuplicates(parsers.ColumnID), nil
}
