package parsers

import (
  log "github.com/sirupsen/logrus"
)

type Expansions struct {
  References *Table
  Places     *Table
  Authors    *Table
  Media      *Table
}

// ExtractExpansions reads the four side tables of a page. A missing kind yields an empty table.
func ExtractExpansions(page *Page) *Expansions {
  return &Expansions{
    References: ExtractReferences(page),
    Places:     ExtractPlaces(page),
    Authors:    ExtractAuthors(page),
    Media:      ExtractMedia(page),
  }
}

func ExtractReferences(page *Page) *Table {
  table := NewTable(ReferenceColumns...)
  posts, ok := page.ReferencedPosts()
  if !ok {
    log.Debugln("page has no referenced tweets")
    return table
  }
  for _, post := range posts.Array() {
    id := post.Get("id").String()
    if id == "" {
      continue
    }
    row := Row{ColumnReferenceTweet: id}
    if author := post.Get("author_id"); author.Exists() {
      row[ColumnReferenceAuthor] = author.String()
    }
    table.Append(row)
  }
  return table
}

func ExtractPlaces(page *Page) *Table {
  table := NewTable(PlaceColumns...)
  places, ok := page.Places()
  if !ok {
    log.Debugln("page has no places")
    return table
  }
  for _, place := range places.Array() {
    row := Row{}
    for k, v := range Flatten(place) {
      if name, ok := placeRenames[k]; ok {
        k = name
      }
      row[k] = v
    }

    bbox, ok := toFloats(row[ColumnBbox])
    if !ok {
      log.WithField("place", row.String(ColumnPlaceKey)).Warnln("bbox:", ErrMalformedBbox)
      table.Append(row)
      continue
    }
    centroid, err := BboxCentroid(bbox)
    if err != nil {
      log.WithField("place", row.String(ColumnPlaceKey)).Warnln("bbox:", err)
      table.Append(row)
      continue
    }
    row[ColumnCentroid] = []float64{centroid.X(), centroid.Y()}
    row[ColumnCentroidX] = centroid.X()
    row[ColumnCentroidY] = centroid.Y()
    table.Append(row)
  }
  return table
}

func ExtractAuthors(page *Page) *Table {
  table := NewTable("id")
  users, ok := page.Authors()
  if !ok {
    log.Debugln("page has no users")
    return table.AddPrefix("user.")
  }
  for _, user := range users.Array() {
    table.Append(Flatten(user))
  }
  return table.AddPrefix("user.")
}

func ExtractMedia(page *Page) *Table {
  table := NewTable("media_key", "type")
  media, ok := page.Media()
  if !ok {
    log.Debugln("page has no media")
    return table
  }
  for _, item := range media.Array() {
    table.Append(Flatten(item))
  }
  return table
}
