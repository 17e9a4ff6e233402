package parsers

import (
  "strings"

  "github.com/PuerkitoBio/goquery"
  log "github.com/sirupsen/logrus"
  "github.com/tidwall/gjson"
)

// Flatten turns nested objects into dotted keys. Arrays are kept whole and nulls are left out.
func Flatten(value gjson.Result) Row {
  row := Row{}
  flattenInto(row, "", value)
  return row
}

func flattenInto(row Row, prefix string, value gjson.Result) {
  if !value.IsObject() {
    if prefix != "" && value.Type != gjson.Null {
      row[prefix] = value.Value()
    }
    return
  }
  value.ForEach(func(key, item gjson.Result) bool {
    name := key.String()
    if prefix != "" {
      name = prefix + "." + name
    }
    flattenInto(row, name, item)
    return true
  })
}

// NormalizeEntities flattens one page worth of tweets and derives the point and reference columns.
func NormalizeEntities(entities []gjson.Result) *Table {
  table := NewTable(ColumnPointX, ColumnPointY, ColumnReferenceIDs, ColumnReferenceTypes)
  for _, entity := range entities {
    if !entity.IsObject() {
      log.WithField("fragment", entity.Raw).Warnln("skipping non-object entity")
      continue
    }
    table.Append(NormalizeEntity(entity))
  }
  return table
}

func NormalizeEntity(entity gjson.Result) Row {
  row := Flatten(entity)

  if value, ok := row.Get(ColumnPoint); ok {
    point, err := ParsePoint(value)
    if err != nil {
      log.WithField("id", row.String(ColumnID)).Warnln("point:", err)
    } else {
      row[ColumnPointX] = point.X()
      row[ColumnPointY] = point.Y()
    }
  }

  if value, ok := row.Get(ColumnReferences); ok {
    if ids, types, ok := FlattenReferences(value); ok {
      row[ColumnReferenceIDs] = ids
      row[ColumnReferenceTypes] = types
    }
  }

  if source := row.String(ColumnSource); strings.Contains(source, "<") {
    row[ColumnSource] = CleanSource(source)
  }
  return row
}

// CleanSource strips the anchor markup older payloads wrap the client name in.
func CleanSource(source string) string {
  doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
  if err != nil {
    return source
  }
  return strings.TrimSpace(doc.Text())
}
