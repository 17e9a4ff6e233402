package common

import (
  "testing"
  "time"

  "github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
  t.Setenv("GEOTWEETS_TEST_INT", "42")
  t.Setenv("GEOTWEETS_TEST_FLOAT", "0.5")
  t.Setenv("GEOTWEETS_TEST_BAD", "x")
  t.Setenv("GEOTWEETS_TEST_ARRAY", "geotweets.collect,6; geotweets.export,3;;")
  t.Setenv("GEOTWEETS_TEST_DURATION", "45s")

  require.Equal(t, 42, GetEnvInt("GEOTWEETS_TEST_INT"))
  require.Equal(t, 0, GetEnvInt("GEOTWEETS_TEST_BAD"))
  require.Equal(t, 0.5, GetEnvFloat("GEOTWEETS_TEST_FLOAT"))
  require.Equal(t, []string{"geotweets.collect,6", "geotweets.export,3"}, GetEnvArray("GEOTWEETS_TEST_ARRAY"))
  require.Nil(t, GetEnvArray("GEOTWEETS_TEST_MISSING"))
  require.Equal(t, 45*time.Second, GetEnvDuration("GEOTWEETS_TEST_DURATION", time.Second))
  require.Equal(t, time.Second, GetEnvDuration("GEOTWEETS_TEST_BAD", time.Second))
}

func TestNewSettings(t *testing.T) {
  t.Setenv("TWITTER_BEARER_TOKEN", "token")
  t.Setenv("SCRAPER_WAIT", "45s")
  t.Setenv("EXPORT_FORMATS", "csv,geojson")

  settings, err := NewSettings()
  require.NoError(t, err)
  require.Equal(t, "token", settings.BearerToken)
  require.Equal(t, 45*time.Second, settings.Wait)
  require.Equal(t, 10, settings.Tries)
  require.Equal(t, 18*time.Second, settings.Cooldown)
  require.Equal(t, []string{"csv", "geojson"}, settings.ExportFormats)
  require.Equal(t, "https://api.twitter.com", settings.ApiUrl)
  require.True(t, settings.SkipFailed)
  require.Equal(t, 100, settings.ExportMinFree)
}

func TestNewSettingsInvalid(t *testing.T) {
  t.Setenv("SCRAPER_TRIES", "many")
  _, err := NewSettings()
  require.Error(t, err)
}
