package models

import (
  "time"

  "gorm.io/datatypes"
)

type Tweet struct {
  ID          string            `gorm:"size:20;primaryKey"`
  TweetID     string            `gorm:"size:32;not null;uniqueIndex:idx_geo_tweets_unit_tweet,priority:2"`
  Unit        string            `gorm:"size:255;not null;uniqueIndex:idx_geo_tweets_unit_tweet,priority:1;index:idx_geo_tweets_unit_timestamp,priority:1"`
  RunID       string            `gorm:"size:20;not null;index"`
  AuthorID    string            `gorm:"size:32;not null"`
  Text        string            `gorm:"type:text;not null"`
  Lang        string            `gorm:"size:16"`
  PlaceID     string            `gorm:"size:32"`
  LocInfoType string            `gorm:"size:8"`
  X           *float64          `gorm:"column:x_coord"`
  Y           *float64          `gorm:"column:y_coord"`
  Data        datatypes.JSONMap `gorm:"not null"`
  Timestamp   int64             `gorm:"not null;index:idx_geo_tweets_unit_timestamp,priority:2"`
  CreatedAt   time.Time         `gorm:"not null"`
  UpdatedAt   time.Time         `gorm:"not null"`
}

func (m *Tweet) TableName() string {
  return "geo_tweets"
}
