package config

import (
  "os"
  "path/filepath"
  "testing"

  "github.com/stretchr/testify/require"
)

func TestLoadSearchConfig(t *testing.T) {
  path := filepath.Join(t.TempDir(), "search_config.yaml")
  require.NoError(t, os.WriteFile(path, []byte("query: \"has:geo lang:fi\"\nmax_tweets: 2000\n"), 0644))

  config, err := LoadSearchConfig(path)
  require.NoError(t, err)
  require.Equal(t, "has:geo lang:fi", config.Query)
  require.Equal(t, 2000, config.MaxTweets)
  require.Equal(t, SEARCH_MAX_RESULTS_PER_CALL, config.ResultsPerCall)
  require.Equal(t, "tweets_", config.FilenamePrefix)
}

func TestLoadSearchConfigMissing(t *testing.T) {
  config, err := LoadSearchConfig(filepath.Join(t.TempDir(), "missing.yaml"))
  require.NoError(t, err)
  require.Equal(t, DefaultSearchConfig(), config)
}

func TestLoadSearchConfigInvalid(t *testing.T) {
  path := filepath.Join(t.TempDir(), "search_config.yaml")
  require.NoError(t, os.WriteFile(path, []byte("results_per_call: 5000\n"), 0644))
  _, err := LoadSearchConfig(path)
  require.Error(t, err)

  require.NoError(t, os.WriteFile(path, []byte("query: [\n"), 0644))
  _, err = LoadSearchConfig(path)
  require.Error(t, err)
}
