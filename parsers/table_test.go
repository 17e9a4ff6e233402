package parsers

import (
  "math"
  "testing"

  "github.com/google/go-cmp/cmp"
  "github.com/stretchr/testify/require"
)

func TestTableAppendRegistersColumns(t *testing.T) {
  table := NewTable("id")
  table.Append(Row{"id": "1", "text": "a", "lang": "en"}, Row{"id": "2", "author_id": "A"})
  require.Equal(t, []string{"id", "lang", "text", "author_id"}, table.Columns)
  require.Equal(t, 2, table.Len())
}

func TestDropDuplicatesIdempotent(t *testing.T) {
  users := NewTable()
  users.Append(
    Row{ColumnUserID: "A1", "user.username": "alice"},
    Row{ColumnUserID: "A2", "user.username": "bob"},
    Row{ColumnUserID: "A1", "user.username": "alice"},
    Row{ColumnUserID: "A3"},
    Row{ColumnUserID: "A2", "user.username": "bob"},
  )

  once := users.DropDuplicates(ColumnUserID)
  twice := once.DropDuplicates(ColumnUserID)
  require.Equal(t, 3, once.Len())
  if diff := cmp.Diff(once.Rows, twice.Rows); diff != "" {
    t.Fatalf("dedup is not idempotent (-once +twice):\n%s", diff)
  }
  require.Equal(t, once.Columns, twice.Columns)

  full := users.DropDuplicates()
  require.Equal(t, 3, full.Len())
  require.Equal(t, "alice", full.Rows[0]["user.username"])
}

func TestDropDuplicatesFullRow(t *testing.T) {
  refs := NewTable(ReferenceColumns...)
  refs.Append(
    Row{ColumnReferenceTweet: "90", ColumnReferenceAuthor: "B1"},
    Row{ColumnReferenceTweet: "90", ColumnReferenceAuthor: "B1"},
    Row{ColumnReferenceTweet: "90", ColumnReferenceAuthor: "B2"},
  )
  require.Equal(t, 2, refs.DropDuplicates().Len())
}

func TestSelectSkipsMissingColumns(t *testing.T) {
  table := NewTable()
  table.Append(Row{"id": "1", "text": "a", "lang": "en"})

  projected := table.Select([]string{"lang", "geo.full_name", "id"})
  require.Equal(t, []string{"lang", "id"}, projected.Columns)
  require.Equal(t, Row{"lang": "en", "id": "1"}, projected.Rows[0])
}

func TestNormalize(t *testing.T) {
  table := NewTable()
  table.Append(Row{"id": "1", "x": math.NaN(), "y": math.Inf(1), "z": nil, "w": 0.0})

  clean := table.Normalize()
  require.Equal(t, Row{"id": "1", "w": 0.0}, clean.Rows[0])
  require.True(t, clean.HasColumn("x"))
}

func TestRenameAndPrefix(t *testing.T) {
  table := NewTable()
  table.Append(Row{"id": "A1", "name": "alice"})

  prefixed := table.AddPrefix("user.")
  require.Equal(t, []string{"user.id", "user.name"}, prefixed.Columns)
  require.Equal(t, "alice", prefixed.Rows[0].String("user.name"))

  dropped := prefixed.Drop("user.name", "missing")
  require.Equal(t, []string{"user.id"}, dropped.Columns)
}

func TestRowString(t *testing.T) {
  row := Row{"count": 42.0, "ratio": 0.25, "name": "x", "flag": true}
  require.Equal(t, "42", row.String("count"))
  require.Equal(t, "0.25", row.String("ratio"))
  require.Equal(t, "x", row.String("name"))
  require.Equal(t, "true", row.String("flag"))
  require.Equal(t, "", row.String("missing"))
}
