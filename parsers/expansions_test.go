package parsers

import (
  "testing"

  "github.com/stretchr/testify/require"
)

func TestExtractAuthorsPrefixesColumns(t *testing.T) {
  page := PageFromResponse([]byte(`{"data":[{"id":"1","author_id":"A1"}],"includes":{"users":[{"id":"A1","username":"alice","public_metrics":{"followers_count":3}}]},"meta":{"result_count":1}}`))

  authors := ExtractAuthors(page)
  require.Equal(t, 1, authors.Len())
  require.Equal(t, ColumnUserID, authors.Columns[0])
  require.Equal(t, "A1", authors.Rows[0].String(ColumnUserID))
  require.Equal(t, "alice", authors.Rows[0].String("user.username"))
  require.Equal(t, "3", authors.Rows[0].String("user.public_metrics.followers_count"))
  for _, column := range authors.Columns {
    require.Contains(t, column, "user.")
  }
}

func TestExtractAuthorsWithoutUsers(t *testing.T) {
  page := PageFromResponse([]byte(`{"data":[{"id":"1","author_id":"A1"}],"meta":{"result_count":1}}`))

  authors := ExtractAuthors(page)
  require.Equal(t, 0, authors.Len())
  require.Equal(t, []string{ColumnUserID}, authors.Columns)
}
