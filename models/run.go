package models

import (
  "time"
)

type Run struct {
  ID         string    `gorm:"size:20;primaryKey"`
  Unit       string    `gorm:"size:255;not null;index"`
  Query      string    `gorm:"size:1024;not null"`
  StartTime  time.Time `gorm:"not null"`
  EndTime    time.Time `gorm:"not null"`
  Pages      int       `gorm:"not null"`
  Fetched    int       `gorm:"not null"`
  Merged     int       `gorm:"not null"`
  Archive    string    `gorm:"size:1024"`
  Error      string    `gorm:"size:2048"`
  Status     int       `gorm:"not null"`
  FinishedAt int64     `gorm:"not null"`
  CreatedAt  time.Time `gorm:"not null"`
  UpdatedAt  time.Time `gorm:"not null"`
}

func (m *Run) TableName() string {
  return "geo_runs"
}
