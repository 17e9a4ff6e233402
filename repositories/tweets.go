package repositories

import (
  "encoding/json"
  "time"

  "github.com/nats-io/nats.go"
  "github.com/rs/xid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/models"
  "scraper.local/geotweets/parsers"
)

type TweetsRepository struct {
  Db   *gorm.DB
  Nats *nats.Conn
}

// NewTweet maps a merged row onto its stored form.
func NewTweet(unit string, runID string, row parsers.Row) *models.Tweet {
  tweet := &models.Tweet{
    ID:       xid.New().String(),
    TweetID:  row.String(parsers.ColumnID),
    Unit:     unit,
    RunID:    runID,
    AuthorID: row.String(parsers.ColumnAuthorID),
    Text:     row.String("text"),
    Lang:     row.String("lang"),
    PlaceID:  row.String(parsers.ColumnPlaceID),
    Data:     common.JSONMap(row),
  }
  if kind, x, y, ok := parsers.Locate(row); ok {
    tweet.LocInfoType = kind
    tweet.X = &x
    tweet.Y = &y
  }
  if createdAt, err := time.Parse(time.RFC3339, row.String("created_at")); err == nil {
    tweet.Timestamp = createdAt.UnixMicro()
  }
  return tweet
}

// NewTweets maps the rows of a unit, keeping the first row of each tweet id.
// An upsert batch may touch a (unit, tweet_id) row only once.
func NewTweets(unit string, runID string, table *parsers.Table) []*models.Tweet {
  tweets := make([]*models.Tweet, 0, table.Len())
  seen := make(map[string]bool, table.Len())
  for _, row := range table.Rows {
    id := row.String(parsers.ColumnID)
    if id == "" || seen[id] {
      continue
    }
    seen[id] = true
    tweets = append(tweets, NewTweet(unit, runID, row))
  }
  return tweets
}

// Save upserts the rows of a unit by tweet id.
func (r *TweetsRepository) Save(unit string, runID string, table *parsers.Table) (count int, err error) {
  tweets := NewTweets(unit, runID, table)
  if len(tweets) == 0 {
    return
  }
  err = r.Db.Clauses(clause.OnConflict{
    Columns: []clause.Column{{Name: "unit"}, {Name: "tweet_id"}},
    DoUpdates: clause.AssignmentColumns([]string{
      "run_id",
      "author_id",
      "text",
      "lang",
      "place_id",
      "loc_info_type",
      "x_coord",
      "y_coord",
      "data",
      "timestamp",
      "updated_at",
    }),
  }).CreateInBatches(tweets, 200).Error
  if err == nil {
    count = len(tweets)
  }
  return
}

func (r *TweetsRepository) Publish(payload *CollectedPayload) error {
  if r.Nats == nil {
    return nil
  }
  data, _ := json.Marshal(payload)
  if err := r.Nats.Publish(config.NATS_TWEETS_COLLECTED, data); err != nil {
    return err
  }
  return r.Nats.Flush()
}

func (r *TweetsRepository) Count(conditions map[string]interface{}) int64 {
  var total int64
  query := r.Db.Model(&models.Tweet{})
  r.filter(query, conditions)
  query.Count(&total)
  return total
}

func (r *TweetsRepository) Listings(conditions map[string]interface{}, current int, pageSize int) []*models.Tweet {
  var tweets []*models.Tweet
  query := r.Db.Select([]string{
    "id",
    "tweet_id",
    "unit",
    "author_id",
    "text",
    "lang",
    "place_id",
    "loc_info_type",
    "x_coord",
    "y_coord",
    "data",
    "timestamp",
  })
  r.filter(query, conditions)
  query.Order("timestamp desc")
  query.Offset((current - 1) * pageSize).Limit(pageSize).Find(&tweets)
  return tweets
}

// Table loads the stored rows of a unit back into a table.
func (r *TweetsRepository) Table(unit string) (*parsers.Table, error) {
  var tweets []*models.Tweet
  err := r.Db.Select([]string{"data"}).Where("unit", unit).Order("timestamp asc").Find(&tweets).Error
  if err != nil {
    return nil, err
  }
  table := parsers.NewTable()
  for _, tweet := range tweets {
    table.Append(parsers.Row(tweet.Data))
  }
  return table, nil
}

func (r *TweetsRepository) filter(query *gorm.DB, conditions map[string]interface{}) {
  if _, ok := conditions["unit"]; ok {
    query.Where("unit=?", conditions["unit"].(string))
  }
  if _, ok := conditions["loc_info_type"]; ok {
    query.Where("loc_info_type=?", conditions["loc_info_type"].(string))
  }
  if _, ok := conditions["timestamp"]; ok {
    query.Where("timestamp BETWEEN ? AND ?", conditions["timestamp"].([]int64)[0], conditions["timestamp"].([]int64)[1])
  }
}
