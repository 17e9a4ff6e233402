package parsers

import (
  "testing"

  "github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
  parser := &Parser{Unit: "test"}
  table, err := parser.ParseFragments(fragments(
    `{"id":"1","author_id":"A1","text":"first"}`,
    `{"id":"2","author_id":"A2","text":"second"}`,
    `{"users":[{"id":"A1","username":"alice"},{"id":"A2","username":"bob"}]}`,
    `{"result_count":2}`,
  ))
  require.NoError(t, err)
  require.Equal(t, 2, table.Len())

  for _, column := range append(append([]string{ColumnMediaTypes}, PlaceColumns...), ReferenceColumns...) {
    require.True(t, table.HasColumn(column), column)
    for _, row := range table.Rows {
      _, ok := row.Get(column)
      require.False(t, ok, column)
    }
  }
  require.Equal(t, "alice", table.Rows[0].String("user.username"))
  require.Equal(t, "bob", table.Rows[1].String("user.username"))
}

func TestParseDropsTweetsWithoutAuthor(t *testing.T) {
  parser := &Parser{}
  table, err := parser.ParseFragments(fragments(
    `{"id":"1","author_id":"X9","text":"orphan"}`,
    `{"users":[{"id":"A1","username":"alice"}]}`,
    `{"result_count":1}`,
  ))
  require.NoError(t, err)
  require.Equal(t, 0, table.Len())
}

func TestParseEmptyResult(t *testing.T) {
  parser := &Parser{}
  _, err := parser.ParseFragments(fragments(`{"result_count":0}`))
  require.ErrorIs(t, err, ErrEmptyResult)

  _, err = parser.Parse(nil)
  require.ErrorIs(t, err, ErrEmptyResult)
}

func TestParseJoinsExpansions(t *testing.T) {
  parser := &Parser{}
  table, err := parser.ParseFragments(fragments(
    `{"id":"10","author_id":"A1","text":"hi","source":"<a href=\"http://twitter.com\">Twitter for iPhone</a>",
      "geo":{"place_id":"P1","coordinates":{"type":"Point","coordinates":[13.4,52.5]}},
      "referenced_tweets":[{"type":"quoted","id":"90"},{"type":"replied_to","id":"91"}],
      "attachments":{"media_keys":["3_1","3_9"],"poll_ids":["5"]}}`,
    `{"id":"11","author_id":"A1","text":"no geo","geo":{"place_id":"P2"}}`,
    `{"tweets":[{"id":"90","author_id":"B1"}],
      "places":[
        {"id":"P1","full_name":"Berlin, Germany","name":"Berlin","place_type":"city","country":"Germany","country_code":"DE",
         "geo":{"type":"Feature","bbox":[13.0,52.0,14.0,53.0],"properties":{}}},
        {"id":"P2","full_name":"Nowhere","geo":{"type":"Feature","bbox":[1.0,2.0]}}],
      "users":[{"id":"A1","username":"alice","public_metrics":{"followers_count":12}}],
      "media":[{"media_key":"3_1","type":"photo"}]}`,
    `{"result_count":2}`,
    `{"id":"12","author_id":"A1","text":"page two","geo":{"place_id":"P1"}}`,
    `{"users":[{"id":"A1","username":"alice","public_metrics":{"followers_count":12}}]}`,
    `{"result_count":1}`,
  ))
  require.NoError(t, err)
  require.Equal(t, 3, table.Len())
  require.False(t, table.HasColumn(ColumnPollIDs))

  first := table.Rows[0]
  require.Equal(t, "Twitter for iPhone", first.String(ColumnSource))
  require.Equal(t, 13.4, first[ColumnPointX])
  require.Equal(t, 52.5, first[ColumnPointY])
  require.Equal(t, "90;91", first.String(ColumnReferenceIDs))
  require.Equal(t, "quoted;replied_to", first.String(ColumnReferenceTypes))
  require.Equal(t, "90;", first.String(ColumnReferenceTweet))
  require.Equal(t, "B1;", first.String(ColumnReferenceAuthor))
  require.Equal(t, []string{"photo", MediaTypeUnresolved}, first[ColumnMediaTypes])
  require.Equal(t, "Berlin, Germany", first.String("geo.full_name"))
  require.Equal(t, "DE", first.String("geo.country_code"))
  require.InDelta(t, 13.5, first[ColumnCentroidX], 1e-9)
  require.InDelta(t, 52.5, first[ColumnCentroidY], 1e-9)
  require.Equal(t, 12.0, first["user.public_metrics.followers_count"])
  require.Equal(t, "alice", first.String("user.username"))

  second := table.Rows[1]
  require.Equal(t, "Nowhere", second.String("geo.full_name"))
  _, ok := second.Get(ColumnCentroidX)
  require.False(t, ok)
  _, ok = second.Get(ColumnPointX)
  require.False(t, ok)
  _, ok = second.Get(ColumnReferenceTweet)
  require.False(t, ok)

  third := table.Rows[2]
  require.Equal(t, "page two", third.String("text"))
  require.Equal(t, "Berlin", third.String("geo.name"))

  located := LocateRows(table)
  require.Equal(t, 2, located.Len())
  require.Equal(t, LocInfoGPS, located.Rows[0][ColumnLocInfoType])
  require.Equal(t, 13.4, located.Rows[0][ColumnX])
  require.Equal(t, LocInfoBbox, located.Rows[1][ColumnLocInfoType])
  require.InDelta(t, 52.5, located.Rows[1][ColumnY], 1e-9)
}

func TestJoinReferencesUnmatched(t *testing.T) {
  tweets := NewTable()
  tweets.Append(Row{"id": "1", ColumnReferenceIDs: "70;71"}, Row{"id": "2"})
  refs := NewTable(ReferenceColumns...)
  refs.Append(Row{ColumnReferenceTweet: "99", ColumnReferenceAuthor: "B9"})

  joined := JoinReferences(tweets, refs)
  require.Equal(t, 2, joined.Len())
  require.True(t, joined.HasColumn(ColumnReferenceAuthor))
  for _, row := range joined.Rows {
    _, ok := row.Get(ColumnReferenceAuthor)
    require.False(t, ok)
  }
}

func TestLeftJoinKeepsLeftOnCollision(t *testing.T) {
  left := NewTable()
  left.Append(Row{"id": "1", "k": "a", "name": "left"}, Row{"id": "2", "k": "b"})
  right := NewTable()
  right.Append(Row{"key": "a", "name": "right", "extra": 1.0})

  joined := LeftJoin(left, right, "k", "key")
  require.Equal(t, 2, joined.Len())
  require.Equal(t, "left", joined.Rows[0]["name"])
  require.Equal(t, 1.0, joined.Rows[0]["extra"])
  _, ok := joined.Rows[1].Get("extra")
  require.False(t, ok)

  inner := InnerJoin(left, right, "k", "key")
  require.Equal(t, 1, inner.Len())
}
