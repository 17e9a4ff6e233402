package parsers

import (
  "encoding/json"
  "fmt"
  "math"
  "sort"
  "strconv"
  "strings"
)

// Row is one flattened record. A column that is not set has no key in the map.
type Row map[string]interface{}

func (r Row) Get(column string) (interface{}, bool) {
  value, ok := r[column]
  if !ok || isAbsent(value) {
    return nil, false
  }
  return value, true
}

func (r Row) String(column string) string {
  value, ok := r.Get(column)
  if !ok {
    return ""
  }
  switch v := value.(type) {
  case string:
    return v
  case float64:
    return strconv.FormatFloat(v, 'f', -1, 64)
  default:
    return fmt.Sprint(v)
  }
}

func (r Row) Float(column string) (float64, bool) {
  value, ok := r.Get(column)
  if !ok {
    return 0, false
  }
  switch v := value.(type) {
  case float64:
    return v, true
  case int:
    return float64(v), true
  case int64:
    return float64(v), true
  }
  return 0, false
}

func (r Row) clone() Row {
  out := make(Row, len(r))
  for k, v := range r {
    out[k] = v
  }
  return out
}

// Table is an ordered set of columns and the rows holding them.
type Table struct {
  Columns []string
  Rows    []Row
  seen    map[string]bool
}

func NewTable(columns ...string) *Table {
  t := &Table{}
  t.AddColumns(columns...)
  return t
}

func (t *Table) Len() int {
  return len(t.Rows)
}

func (t *Table) HasColumn(column string) bool {
  return t.seen[column]
}

func (t *Table) AddColumns(columns ...string) {
  if t.seen == nil {
    t.seen = make(map[string]bool)
  }
  for _, column := range columns {
    if t.seen[column] {
      continue
    }
    t.seen[column] = true
    t.Columns = append(t.Columns, column)
  }
}

// Append adds rows, registering columns not seen before in sorted order per row.
func (t *Table) Append(rows ...Row) {
  for _, row := range rows {
    var fresh []string
    for column := range row {
      if !t.seen[column] {
        fresh = append(fresh, column)
      }
    }
    sort.Strings(fresh)
    t.AddColumns(fresh...)
    t.Rows = append(t.Rows, row)
  }
}

func Concat(tables ...*Table) *Table {
  out := NewTable()
  for _, t := range tables {
    if t == nil {
      continue
    }
    out.AddColumns(t.Columns...)
    out.Rows = append(out.Rows, t.Rows...)
  }
  return out
}

// DropDuplicates keeps the first row for every distinct key. Without keys the whole row is the key.
func (t *Table) DropDuplicates(keys ...string) *Table {
  out := NewTable(t.Columns...)
  seen := make(map[string]bool, len(t.Rows))
  for _, row := range t.Rows {
    key := rowKey(row, keys)
    if seen[key] {
      continue
    }
    seen[key] = true
    out.Rows = append(out.Rows, row)
  }
  return out
}

func (t *Table) Rename(columns map[string]string) *Table {
  out := NewTable()
  for _, column := range t.Columns {
    if name, ok := columns[column]; ok {
      out.AddColumns(name)
    } else {
      out.AddColumns(column)
    }
  }
  for _, row := range t.Rows {
    renamed := make(Row, len(row))
    for k, v := range row {
      if name, ok := columns[k]; ok {
        k = name
      }
      renamed[k] = v
    }
    out.Rows = append(out.Rows, renamed)
  }
  return out
}

func (t *Table) AddPrefix(prefix string) *Table {
  columns := make(map[string]string, len(t.Columns))
  for _, column := range t.Columns {
    columns[column] = prefix + column
  }
  return t.Rename(columns)
}

// Drop removes columns; unknown names are ignored.
func (t *Table) Drop(columns ...string) *Table {
  drop := make(map[string]bool, len(columns))
  for _, column := range columns {
    drop[column] = true
  }
  out := NewTable()
  for _, column := range t.Columns {
    if !drop[column] {
      out.AddColumns(column)
    }
  }
  for _, row := range t.Rows {
    kept := make(Row, len(row))
    for k, v := range row {
      if !drop[k] {
        kept[k] = v
      }
    }
    out.Rows = append(out.Rows, kept)
  }
  return out
}

// Select projects the table onto the requested columns in that order, skipping columns it does not have.
func (t *Table) Select(columns []string) *Table {
  var present []string
  for _, column := range columns {
    if t.seen[column] {
      present = append(present, column)
    }
  }
  out := NewTable(present...)
  for _, row := range t.Rows {
    projected := make(Row, len(present))
    for _, column := range present {
      if v, ok := row[column]; ok {
        projected[column] = v
      }
    }
    out.Rows = append(out.Rows, projected)
  }
  return out
}

// Normalize removes nil, NaN and infinite cells so that absence has one representation.
func (t *Table) Normalize() *Table {
  out := NewTable(t.Columns...)
  for _, row := range t.Rows {
    clean := make(Row, len(row))
    for k, v := range row {
      if !isAbsent(v) {
        clean[k] = v
      }
    }
    out.Rows = append(out.Rows, clean)
  }
  return out
}

func isAbsent(value interface{}) bool {
  switch v := value.(type) {
  case nil:
    return true
  case float64:
    return math.IsNaN(v) || math.IsInf(v, 0)
  case []string:
    return v == nil
  case []interface{}:
    return v == nil
  }
  return false
}

func rowKey(row Row, keys []string) string {
  if len(keys) == 0 {
    buf, err := json.Marshal(row)
    if err != nil {
      return fmt.Sprint(row)
    }
    return string(buf)
  }
  parts := make([]string, len(keys))
  for i, key := range keys {
    if value, ok := row.Get(key); ok {
      buf, err := json.Marshal(value)
      if err != nil {
        buf = []byte(fmt.Sprint(value))
      }
      parts[i] = string(buf)
    }
  }
  return strings.Join(parts, "\x1f")
}
