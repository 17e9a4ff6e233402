package commands

import (
  "io"

  "github.com/jedib0t/go-pretty/v6/table"
  "github.com/jedib0t/go-pretty/v6/text"

  "scraper.local/geotweets/parsers"
)

var PreviewColumns = []string{
  parsers.ColumnID,
  "created_at",
  "user.username",
  "geo.full_name",
  parsers.ColumnLocInfoType,
  parsers.ColumnX,
  parsers.ColumnY,
  "text",
}

// Preview renders the first limit located rows of a table.
func Preview(w io.Writer, t *parsers.Table, limit int) {
  located := parsers.LocateRows(t)

  tw := table.NewWriter()
  tw.SetOutputMirror(w)
  tw.SetStyle(table.StyleLight)
  tw.SetColumnConfigs([]table.ColumnConfig{
    {Name: "text", WidthMax: 60, Colors: text.Colors{text.FgHiWhite}},
  })

  header := table.Row{}
  for _, column := range PreviewColumns {
    header = append(header, column)
  }
  tw.AppendHeader(header)

  for i, row := range located.Rows {
    if i >= limit {
      break
    }
    record := table.Row{}
    for _, column := range PreviewColumns {
      record = append(record, row.String(column))
    }
    tw.AppendRow(record)
  }
  tw.AppendFooter(table.Row{"rows", t.Len(), "located", located.Len()})
  tw.Render()
}
