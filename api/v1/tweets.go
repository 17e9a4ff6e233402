package v1

import (
  "fmt"
  "net/http"
  "strconv"
  "strings"
  "time"

  "github.com/go-chi/chi/v5"
  log "github.com/sirupsen/logrus"

  "scraper.local/geotweets/api"
  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
  "scraper.local/geotweets/repositories"
  "scraper.local/geotweets/repositories/exporters"
)

type TweetsHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.TweetsRepository
}

func NewTweetsRouter(apiContext *common.ApiContext) http.Handler {
  h := TweetsHandler{
    ApiContext: apiContext,
    Repository: &repositories.TweetsRepository{
      Db: apiContext.Db,
    },
  }

  r := chi.NewRouter()
  r.Get("/", h.Listings)
  r.Get("/geojson", h.GeoJSON)

  return r
}

func (h *TweetsHandler) Listings(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  q := r.URL.Query()
  unit := strings.TrimSpace(q.Get("unit"))
  if unit == "" {
    response.Error(http.StatusForbidden, 1004, "unit is empty")
    return
  }
  current, pageSize, ok := api.Paging(r)
  if !ok {
    response.Error(http.StatusForbidden, 1004, "paging not valid")
    return
  }

  conditions := map[string]interface{}{
    "unit": unit,
  }
  if kind := q.Get("locinfo_type"); kind != "" {
    if kind != parsers.LocInfoGPS && kind != parsers.LocInfoBbox {
      response.Error(http.StatusForbidden, 1004, "locinfo_type not valid")
      return
    }
    conditions["loc_info_type"] = kind
  }

  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  total := h.count(unit, conditions)
  tweets := h.Repository.Listings(conditions, current, pageSize)
  data := make([]*TweetInfo, len(tweets))
  for i, tweet := range tweets {
    data[i] = &TweetInfo{
      ID:          tweet.ID,
      TweetID:     tweet.TweetID,
      Unit:        tweet.Unit,
      AuthorID:    tweet.AuthorID,
      Text:        tweet.Text,
      Lang:        tweet.Lang,
      PlaceID:     tweet.PlaceID,
      LocInfoType: tweet.LocInfoType,
      X:           tweet.X,
      Y:           tweet.Y,
      Timestamp:   tweet.Timestamp,
    }
  }

  response.Pagenate(data, total, current, pageSize)
}

// count caches the unfiltered total of a unit until the next collection of it.
func (h *TweetsHandler) count(unit string, conditions map[string]interface{}) int64 {
  if len(conditions) > 1 || h.ApiContext.Rdb == nil {
    return h.Repository.Count(conditions)
  }
  key := fmt.Sprintf(config.REDIS_KEY_TWEETS_COUNT, unit)
  if value, err := h.ApiContext.Rdb.Get(h.ApiContext.Ctx, key).Result(); err == nil {
    if total, err := strconv.ParseInt(value, 10, 64); err == nil {
      return total
    }
  }
  total := h.Repository.Count(conditions)
  h.ApiContext.Rdb.Set(h.ApiContext.Ctx, key, total, time.Hour)
  return total
}

func (h *TweetsHandler) GeoJSON(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  unit := strings.TrimSpace(r.URL.Query().Get("unit"))
  if unit == "" {
    response.Error(http.StatusForbidden, 1004, "unit is empty")
    return
  }

  table, err := h.Repository.Table(unit)
  if err != nil {
    log.WithField("unit", unit).Errorln("load tweets failed:", err)
    response.Error(http.StatusInternalServerError, 1000, "load tweets failed")
    return
  }
  if table.Len() == 0 {
    response.Error(http.StatusNotFound, 1001, "unit not found")
    return
  }

  w.Header().Set("Content-Type", "application/geo+json")
  exporter := &exporters.GeoJSONExporter{}
  if err := exporter.Export(w, table); err != nil {
    log.WithField("unit", unit).Errorln("export geojson failed:", err)
  }
}
