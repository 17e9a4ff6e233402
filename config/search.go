package config

import (
  "errors"
  "fmt"
  "os"

  "dario.cat/mergo"
  "gopkg.in/yaml.v3"
)

type SearchConfig struct {
  Query          string `yaml:"query"`
  ResultsPerCall int    `yaml:"results_per_call"`
  MaxTweets      int    `yaml:"max_tweets"`
  FilenamePrefix string `yaml:"filename_prefix"`
}

func DefaultSearchConfig() SearchConfig {
  return SearchConfig{
    ResultsPerCall: SEARCH_MAX_RESULTS_PER_CALL,
    MaxTweets:      1000000,
    FilenamePrefix: "tweets_",
  }
}

// LoadSearchConfig reads path over the defaults. A missing file yields the defaults.
func LoadSearchConfig(path string) (config SearchConfig, err error) {
  config = DefaultSearchConfig()
  buf, err := os.ReadFile(path)
  if errors.Is(err, os.ErrNotExist) {
    return config, nil
  }
  if err != nil {
    return
  }

  var loaded SearchConfig
  if err = yaml.Unmarshal(buf, &loaded); err != nil {
    return config, fmt.Errorf("parse %s: %w", path, err)
  }
  if err = mergo.Merge(&config, loaded, mergo.WithOverride); err != nil {
    return
  }
  err = config.Validate()
  return
}

func (c SearchConfig) Validate() error {
  if c.ResultsPerCall < 10 || c.ResultsPerCall > SEARCH_MAX_RESULTS_PER_CALL {
    return fmt.Errorf("results_per_call must be between 10 and %d", SEARCH_MAX_RESULTS_PER_CALL)
  }
  if c.MaxTweets < 1 {
    return errors.New("max_tweets must be positive")
  }
  return nil
}
