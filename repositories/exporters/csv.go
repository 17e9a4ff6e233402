package exporters

import (
  "encoding/csv"
  "encoding/json"
  "io"
  "strconv"

  "scraper.local/geotweets/parsers"
)

const CSVSeparator = ';'

type CSVExporter struct {
  Columns []string
}

func (e *CSVExporter) Extension() string {
  return "csv"
}

func (e *CSVExporter) Export(w io.Writer, table *parsers.Table) error {
  if len(e.Columns) > 0 {
    table = table.Select(e.Columns)
  }
  writer := csv.NewWriter(w)
  writer.Comma = CSVSeparator
  if err := writer.Write(table.Columns); err != nil {
    return err
  }
  record := make([]string, len(table.Columns))
  for _, row := range table.Rows {
    for i, column := range table.Columns {
      record[i] = Cell(row, column)
    }
    if err := writer.Write(record); err != nil {
      return err
    }
  }
  writer.Flush()
  return writer.Error()
}

// Cell renders one value as text. Lists and objects are written as JSON.
func Cell(row parsers.Row, column string) string {
  value, ok := row.Get(column)
  if !ok {
    return ""
  }
  switch v := value.(type) {
  case string:
    return v
  case float64:
    return strconv.FormatFloat(v, 'f', -1, 64)
  case bool:
    return strconv.FormatBool(v)
  }
  buf, err := json.Marshal(value)
  if err != nil {
    return row.String(column)
  }
  return string(buf)
}
