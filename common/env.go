package common

import (
  "os"
  "strconv"
  "strings"
  "time"
)

func GetEnvString(key string) string {
  return os.Getenv(key)
}

func GetEnvInt(key string) int {
  value, err := strconv.Atoi(os.Getenv(key))
  if err != nil {
    return 0
  }
  return value
}

func GetEnvFloat(key string) float64 {
  value, err := strconv.ParseFloat(os.Getenv(key), 64)
  if err != nil {
    return 0
  }
  return value
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
  value, err := time.ParseDuration(os.Getenv(key))
  if err != nil {
    return fallback
  }
  return value
}

// GetEnvArray splits a value on ";" so entries may themselves hold commas (ASYNQ_QUEUE=geotweets.collect,6;geotweets.export,3).
func GetEnvArray(key string) []string {
  var items []string
  for _, item := range strings.Split(os.Getenv(key), ";") {
    item = strings.TrimSpace(item)
    if item != "" {
      items = append(items, item)
    }
  }
  return items
}
