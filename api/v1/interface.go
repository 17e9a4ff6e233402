package v1

import (
  "time"
)

type TweetInfo struct {
  ID          string   `json:"id"`
  TweetID     string   `json:"tweet_id"`
  Unit        string   `json:"unit"`
  AuthorID    string   `json:"author_id"`
  Text        string   `json:"text"`
  Lang        string   `json:"lang"`
  PlaceID     string   `json:"place_id"`
  LocInfoType string   `json:"locinfo_type"`
  X           *float64 `json:"x_coord"`
  Y           *float64 `json:"y_coord"`
  Timestamp   int64    `json:"timestamp"`
}

type TaskInfo struct {
  ID        string                 `json:"id"`
  Name      string                 `json:"name"`
  Action    int                    `json:"action"`
  Params    map[string]interface{} `json:"params"`
  Timestamp int64                  `json:"timestamp"`
  Status    int                    `json:"status"`
  CreatedAt time.Time              `json:"created_at"`
  UpdatedAt time.Time              `json:"updated_at"`
}
