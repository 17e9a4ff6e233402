package workers

import (
  "encoding/json"
  "fmt"
  "time"

  "github.com/nats-io/nats.go"
  log "github.com/sirupsen/logrus"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories"
  "scraper.local/geotweets/repositories/exporters"
)

// Exports rebuilds the GIS layer of a unit from the stored tweets whenever the unit is collected.
type Exports struct {
  NatsContext      *common.NatsContext
  TweetsRepository *repositories.TweetsRepository
  Store            *exporters.Store
}

func NewExports(natsContext *common.NatsContext) *Exports {
  return &Exports{
    NatsContext: natsContext,
    TweetsRepository: &repositories.TweetsRepository{
      Db: natsContext.Db,
    },
  }
}

func (h *Exports) Subscribe() (err error) {
  settings := h.NatsContext.Settings
  h.Store, err = exporters.NewStore(h.NatsContext.Ctx, settings.ExportUrl, settings.ExportDir)
  if err != nil {
    return
  }
  _, err = h.NatsContext.Conn.Subscribe(config.NATS_TWEETS_COLLECTED, h.Apply)
  return
}

func (h *Exports) Apply(m *nats.Msg) {
  var payload repositories.CollectedPayload
  if err := json.Unmarshal(m.Data, &payload); err != nil {
    log.Warnln("invalid collected payload:", err)
    return
  }
  if payload.Count == 0 {
    return
  }

  mutex := common.NewMutex(
    h.NatsContext.Rdb,
    h.NatsContext.Ctx,
    fmt.Sprintf(config.LOCKS_TASKS_EXPORTERS_APPLY, payload.Unit),
  )
  if !mutex.Lock(5 * time.Minute) {
    return
  }
  defer mutex.Unlock()

  h.NatsContext.Rdb.Del(h.NatsContext.Ctx, fmt.Sprintf(config.REDIS_KEY_TWEETS_COUNT, payload.Unit))

  keys, err := h.Export(payload.Unit)
  if err != nil {
    log.WithField("unit", payload.Unit).Errorln("export failed:", err)
    return
  }
  log.WithField("unit", payload.Unit).Infoln("exported:", keys)
}

func (h *Exports) Export(unit string) ([]string, error) {
  table, err := h.TweetsRepository.Table(unit)
  if err != nil {
    return nil, err
  }
  return exporters.Export(
    h.NatsContext.Ctx,
    h.Store,
    "geojson/"+unit,
    table,
    []string{exporters.FormatGeoJSON},
    nil,
  )
}
