package parsers

import (
  "errors"
  "strings"

  log "github.com/sirupsen/logrus"
  "github.com/tidwall/gjson"
)

var ErrEmptyResult = errors.New("no tweets in result")

type Parser struct {
  Unit string
}

func (p *Parser) ParseFragments(fragments []gjson.Result) (*Table, error) {
  return p.Parse(GroupPages(fragments))
}

// Parse merges the pages of one query window into a single wide table.
// Tweets whose author is missing from every users expansion are dropped.
func (p *Parser) Parse(pages []*Page) (*Table, error) {
  logger := log.WithField("unit", p.Unit)

  var batches, references, places, authors, media []*Table
  for i, page := range pages {
    batch := NormalizeEntities(page.Entities)
    expansions := ExtractExpansions(page)
    logger.WithField("page", i).Debugln("tweets:", batch.Len(), "users:", expansions.Authors.Len(), "places:", expansions.Places.Len())

    batches = append(batches, batch)
    references = append(references, expansions.References)
    places = append(places, expansions.Places)
    authors = append(authors, expansions.Authors)
    media = append(media, expansions.Media)
  }

  tweets := Concat(batches...)
  if tweets.Len() == 0 {
    return nil, ErrEmptyResult
  }

  // users and places repeat across pages with identical payloads
  referenceTable := Concat(references...).DropDuplicates()
  authorTable := Concat(authors...).DropDuplicates(ColumnUserID)
  placeTable := Concat(places...).DropDuplicates(ColumnPlaceKey)

  tweets = ResolveMediaTypes(tweets, Concat(media...))

  merged := InnerJoin(tweets, authorTable, ColumnAuthorID, ColumnUserID)
  if dropped := tweets.Len() - merged.Len(); dropped > 0 {
    logger.Warnln("dropped tweets without author:", dropped)
  }
  merged = LeftJoin(merged, placeTable, ColumnPlaceID, ColumnPlaceKey)
  merged = JoinReferences(merged, referenceTable)

  return merged.Normalize().Drop(ColumnPollIDs), nil
}

func InnerJoin(left, right *Table, leftKey, rightKey string) *Table {
  return join(left, right, leftKey, rightKey, false)
}

func LeftJoin(left, right *Table, leftKey, rightKey string) *Table {
  return join(left, right, leftKey, rightKey, true)
}

// join keeps the left value when both tables carry a column.
func join(left, right *Table, leftKey, rightKey string, keepUnmatched bool) *Table {
  out := NewTable(left.Columns...)
  var extra []string
  for _, column := range right.Columns {
    if !left.HasColumn(column) {
      extra = append(extra, column)
    }
  }
  out.AddColumns(extra...)

  matches := map[string][]Row{}
  for _, row := range right.Rows {
    key := row.String(rightKey)
    if key == "" {
      continue
    }
    matches[key] = append(matches[key], row)
  }

  for _, row := range left.Rows {
    found := matches[row.String(leftKey)]
    if len(found) == 0 {
      if keepUnmatched {
        out.Rows = append(out.Rows, row)
      }
      continue
    }
    for _, match := range found {
      merged := row.clone()
      for _, column := range extra {
        if v, ok := match[column]; ok {
          merged[column] = v
        }
      }
      out.Rows = append(out.Rows, merged)
    }
  }
  return out
}

// JoinReferences looks every referenced tweet id up on its own and writes the matches back
// aligned with referenced_tweets.id. Unmatched ids leave an empty segment.
func JoinReferences(tweets, references *Table) *Table {
  authors := map[string]string{}
  for _, row := range references.Rows {
    id := row.String(ColumnReferenceTweet)
    if _, ok := authors[id]; id == "" || ok {
      continue
    }
    authors[id] = row.String(ColumnReferenceAuthor)
  }

  out := NewTable(tweets.Columns...)
  out.AddColumns(ReferenceColumns...)
  for _, row := range tweets.Rows {
    ids := SplitReferences(row.String(ColumnReferenceIDs))
    if len(ids) == 0 {
      out.Rows = append(out.Rows, row)
      continue
    }

    matchedIDs := make([]string, len(ids))
    matchedAuthors := make([]string, len(ids))
    matched := 0
    for i, id := range ids {
      author, ok := authors[id]
      if !ok {
        continue
      }
      matchedIDs[i] = id
      matchedAuthors[i] = author
      matched++
    }
    if matched == 0 {
      out.Rows = append(out.Rows, row)
      continue
    }

    joined := row.clone()
    joined[ColumnReferenceTweet] = strings.Join(matchedIDs, ReferenceSeparator)
    joined[ColumnReferenceAuthor] = strings.Join(matchedAuthors, ReferenceSeparator)
    out.Rows = append(out.Rows, joined)
  }
  return out
}
