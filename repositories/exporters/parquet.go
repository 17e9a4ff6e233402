package exporters

import (
  "bytes"
  "encoding/json"
  "fmt"
  "io"

  "github.com/parquet-go/parquet-go"

  "scraper.local/geotweets/parsers"
)

// ParquetRow keeps the commonly queried columns typed and the whole row as JSON.
type ParquetRow struct {
  ID          string   `parquet:"id"`
  AuthorID    string   `parquet:"author_id"`
  CreatedAt   string   `parquet:"created_at"`
  Text        string   `parquet:"text"`
  Lang        string   `parquet:"lang"`
  Username    string   `parquet:"user_username"`
  PlaceID     string   `parquet:"place_id"`
  PlaceName   string   `parquet:"place_full_name"`
  LocInfoType string   `parquet:"locinfo_type"`
  X           *float64 `parquet:"x_coord,optional"`
  Y           *float64 `parquet:"y_coord,optional"`
  Row         string   `parquet:"row"`
}

type ParquetExporter struct{}

func (e *ParquetExporter) Extension() string {
  return "parquet"
}

func (e *ParquetExporter) Export(w io.Writer, table *parsers.Table) error {
  rows := make([]ParquetRow, 0, table.Len())
  for _, row := range table.Rows {
    record, err := NewParquetRow(row)
    if err != nil {
      return err
    }
    rows = append(rows, record)
  }

  writer := parquet.NewGenericWriter[ParquetRow](w, parquet.Compression(&parquet.Zstd))
  if _, err := writer.Write(rows); err != nil {
    writer.Close()
    return err
  }
  return writer.Close()
}

func NewParquetRow(row parsers.Row) (record ParquetRow, err error) {
  buf, err := json.Marshal(row)
  if err != nil {
    return record, fmt.Errorf("encode tweet %s: %w", row.String(parsers.ColumnID), err)
  }
  record = ParquetRow{
    ID:        row.String(parsers.ColumnID),
    AuthorID:  row.String(parsers.ColumnAuthorID),
    CreatedAt: row.String("created_at"),
    Text:      row.String("text"),
    Lang:      row.String("lang"),
    Username:  row.String("user.username"),
    PlaceID:   row.String(parsers.ColumnPlaceID),
    PlaceName: row.String("geo.full_name"),
    Row:       string(buf),
  }
  if kind, x, y, ok := parsers.Locate(row); ok {
    record.LocInfoType = kind
    record.X = &x
    record.Y = &y
  }
  return record, nil
}

// ReadParquet restores the table a ParquetExporter wrote. Column order follows first appearance.
func ReadParquet(data []byte) (*parsers.Table, error) {
  rows, err := parquet.Read[ParquetRow](bytes.NewReader(data), int64(len(data)))
  if err != nil {
    return nil, err
  }
  table := parsers.NewTable()
  for _, record := range rows {
    row := parsers.Row{}
    if err := json.Unmarshal([]byte(record.Row), &row); err != nil {
      return nil, fmt.Errorf("decode tweet %s: %w", record.ID, err)
    }
    table.Append(row)
  }
  return table, nil
}
