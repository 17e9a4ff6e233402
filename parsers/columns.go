package parsers

const (
  ColumnID              = "id"
  ColumnAuthorID        = "author_id"
  ColumnSource          = "source"
  ColumnPlaceID         = "geo.place_id"
  ColumnPointType       = "geo.coordinates.type"
  ColumnPoint           = "geo.coordinates.coordinates"
  ColumnPointX          = "geo.coordinates.x"
  ColumnPointY          = "geo.coordinates.y"
  ColumnReferences      = "referenced_tweets"
  ColumnReferenceIDs    = "referenced_tweets.id"
  ColumnReferenceTypes  = "referenced_tweets.type"
  ColumnReferenceTweet  = "referenced_tweets.tweet_id"
  ColumnReferenceAuthor = "referenced_tweets.author_id"
  ColumnMediaKeys       = "attachments.media_keys"
  ColumnMediaTypes      = "attachments.media_types"
  ColumnPollIDs         = "attachments.poll_ids"
  ColumnUserID          = "user.id"
  ColumnPlaceKey        = "geo.id"
  ColumnBbox            = "geo.bbox"
  ColumnCentroid        = "geo.centroid"
  ColumnCentroidX       = "geo.centroid.x"
  ColumnCentroidY       = "geo.centroid.y"
  ColumnLocInfoType     = "locinfo_type"
  ColumnX               = "x_coord"
  ColumnY               = "y_coord"
)

const (
  LocInfoGPS  = "gps"
  LocInfoBbox = "bbox"
)

// placeRenames maps the place expansion's top-level keys into the geo scope of a tweet row.
var placeRenames = map[string]string{
  "country_code": "geo.country_code",
  "place_type":   "geo.place_type",
  "full_name":    "geo.full_name",
  "id":           "geo.id",
  "country":      "geo.country",
  "name":         "geo.name",
}

var PlaceColumns = []string{
  "geo.id", "geo.full_name", "geo.name", "geo.place_type", "geo.country", "geo.country_code",
  "geo.type", ColumnBbox, ColumnCentroid, ColumnCentroidX, ColumnCentroidY,
}

var ReferenceColumns = []string{
  ColumnReferenceTweet, ColumnReferenceAuthor,
}

var ExportColumns = []string{
  "id", "author_id", "created_at", "reply_settings", "conversation_id",
  "in_reply_to_user_id", "text", "possibly_sensitive",
  "lang", "referenced_tweets", "referenced_tweets.id",
  "referenced_tweets.author_id", "referenced_tweets.type",
  "public_metrics.retweet_count", "public_metrics.reply_count",
  "public_metrics.like_count", "public_metrics.quote_count",
  "entities.mentions", "entities.urls", "entities.hashtags",
  "entities.annotations", "attachments.media_keys",
  "attachments.media_types", "user.description", "user.verified", "user.id", "user.protected",
  "user.url", "user.profile_image_url", "user.location", "user.name",
  "user.created_at", "user.username", "user.public_metrics.followers_count",
  "user.public_metrics.following_count", "user.public_metrics.tweet_count",
  "user.public_metrics.listed_count", "user.entities.description.hashtags",
  "user.entities.url.urls", "user.entities.description.mentions",
  "user.entities.description.urls", "geo.place_id", "geo.coordinates.type",
  "geo.coordinates.coordinates", "geo.coordinates.x", "geo.coordinates.y",
  "geo.full_name", "geo.name", "geo.place_type", "geo.country",
  "geo.country_code", "geo.type", "geo.bbox", "geo.centroid",
  "geo.centroid.x", "geo.centroid.y",
}

var BboxExportColumns = []string{
  "id", "author_id", "created_at", "conversation_id",
  "in_reply_to_user_id", "text", "lang",
  "public_metrics.retweet_count",
  "public_metrics.reply_count", "public_metrics.like_count",
  "public_metrics.quote_count", "user.location",
  "user.created_at", "user.username",
  "user.public_metrics.followers_count",
  "user.public_metrics.following_count",
  "user.public_metrics.tweet_count",
  "geo.place_id", "geo.coordinates.type",
  "geo.coordinates.coordinates",
  "geo.coordinates.x", "geo.coordinates.y", "geo.full_name",
  "geo.name", "geo.place_type", "geo.country",
  "geo.country_code", "geo.type", "geo.bbox",
  "geo.centroid", "geo.centroid.x", "geo.centroid.y",
}

// GeoExportColumns holds the scalar columns a GIS layer can carry.
var GeoExportColumns = []string{
  "id", "author_id", "created_at", "reply_settings", "conversation_id",
  "source", "in_reply_to_user_id", "text", "possibly_sensitive", "lang",
  "referenced_tweets.id", "referenced_tweets.author_id", "referenced_tweets.type",
  "public_metrics.retweet_count", "public_metrics.reply_count",
  "public_metrics.like_count", "public_metrics.quote_count",
  "user.description", "user.verified",
  "user.id", "user.protected", "user.url",
  "user.location", "user.name", "user.created_at", "user.username",
  "user.public_metrics.followers_count",
  "user.public_metrics.following_count",
  "user.public_metrics.tweet_count",
  "geo.place_id", "geo.coordinates.type", "geo.coordinates.x",
  "geo.coordinates.y", "geo.full_name", "geo.name",
  "geo.place_type", "geo.country", "geo.country_code", "geo.type",
  "locinfo_type", "x_coord", "y_coord",
}

func ExportOrder(name string) []string {
  switch name {
  case "bbox":
    return BboxExportColumns
  case "geo":
    return GeoExportColumns
  }
  return ExportColumns
}

// Locate picks the tweet's own coordinates (gps) or else its place centroid (bbox).
func Locate(row Row) (kind string, x float64, y float64, ok bool) {
  if x, okX := row.Float(ColumnPointX); okX {
    if y, okY := row.Float(ColumnPointY); okY {
      return LocInfoGPS, x, y, true
    }
  }
  if x, okX := row.Float(ColumnCentroidX); okX {
    if y, okY := row.Float(ColumnCentroidY); okY {
      return LocInfoBbox, x, y, true
    }
  }
  return "", 0, 0, false
}

// LocateRows adds locinfo_type, x_coord and y_coord. Rows without any location are left out.
func LocateRows(table *Table) *Table {
  out := NewTable(table.Columns...)
  out.AddColumns(ColumnLocInfoType, ColumnX, ColumnY)
  for _, row := range table.Rows {
    kind, x, y, ok := Locate(row)
    if !ok {
      continue
    }
    located := row.clone()
    located[ColumnLocInfoType] = kind
    located[ColumnX] = x
    located[ColumnY] = y
    out.Rows = append(out.Rows, located)
  }
  return out
}
