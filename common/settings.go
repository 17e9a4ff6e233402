package common

import (
  "time"

  "github.com/caarlos0/env/v6"
)

type Settings struct {
  BearerToken   string        `env:"TWITTER_BEARER_TOKEN"`
  ApiUrl        string        `env:"TWITTER_API_URL" envDefault:"https://api.twitter.com"`
  Proxy         string        `env:"SCRAPER_PROXY"`
  Timeout       time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"30s"`
  Wait          time.Duration `env:"SCRAPER_WAIT" envDefault:"15s"`
  Cooldown      time.Duration `env:"SCRAPER_COOLDOWN" envDefault:"18s"`
  Interval      time.Duration `env:"SCRAPER_REQUEST_INTERVAL" envDefault:"1s"`
  Tries         int           `env:"SCRAPER_TRIES" envDefault:"10"`
  SkipFailed    bool          `env:"SCRAPER_SKIP_FAILED" envDefault:"true"`
  ExportUrl     string        `env:"EXPORT_BUCKET_URL"`
  ExportDir     string        `env:"EXPORT_DIR" envDefault:"output"`
  ExportFormats []string      `env:"EXPORT_FORMATS" envSeparator:"," envDefault:"csv,parquet"`
  ExportOrder   string        `env:"EXPORT_ORDER" envDefault:"full"`
  ExportMinFree int           `env:"EXPORT_MIN_FREE_MB" envDefault:"100"`
  SearchConfig  string        `env:"SEARCH_CONFIG" envDefault:"search_config.yaml"`
}

func NewSettings() (*Settings, error) {
  settings := &Settings{}
  if err := env.Parse(settings); err != nil {
    return nil, err
  }
  return settings, nil
}
