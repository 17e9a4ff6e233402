package repositories

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/nats-io/nats.go"
  log "github.com/sirupsen/logrus"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
  "scraper.local/geotweets/repositories/archives"
  "scraper.local/geotweets/repositories/exporters"
  "scraper.local/geotweets/repositories/scrapers"
)

type CollectorsRepository struct {
  Settings         *common.Settings
  SearchRepository *scrapers.SearchRepository
  TweetsRepository *TweetsRepository
  RunsRepository   *RunsRepository
  Store            *exporters.Store
}

// NewCollectorsRepository wires a collector. db and nc may be nil to skip persistence and announcements.
func NewCollectorsRepository(ctx context.Context, settings *common.Settings, db *gorm.DB, nc *nats.Conn) (*CollectorsRepository, error) {
  store, err := exporters.NewStore(ctx, settings.ExportUrl, settings.ExportDir)
  if err != nil {
    return nil, err
  }
  if settings.ExportUrl == "" {
    if err := common.EnsureFreeSpace(settings.ExportDir, settings.ExportMinFree); err != nil {
      store.Close()
      return nil, err
    }
  }
  return &CollectorsRepository{
    Settings:         settings,
    SearchRepository: scrapers.NewSearchRepository(settings),
    TweetsRepository: &TweetsRepository{
      Db:   db,
      Nats: nc,
    },
    RunsRepository: &RunsRepository{
      Db: db,
    },
    Store: store,
  }, nil
}

// Collect fetches every query of a unit, archives the raw pages and merges them into one table
// that is persisted, exported and announced.
func (r *CollectorsRepository) Collect(ctx context.Context, unit *Unit) (result *CollectResult, err error) {
  logger := log.WithField("unit", unit.Name)
  result = &CollectResult{}

  run, err := r.RunsRepository.Create(unit)
  if err != nil {
    return result, fmt.Errorf("create run: %w", err)
  }
  result.RunID = run.ID
  defer func() {
    if finishErr := r.RunsRepository.Finish(run, result, err); finishErr != nil {
      logger.Warnln("finish run failed:", finishErr)
    }
  }()

  var pages []*parsers.Page
  for i, query := range unit.Queries {
    if i > 0 {
      if err = scrapers.Sleep(ctx, r.SearchRepository.Cooldown(result.Fetched)); err != nil {
        return
      }
    }
    fetched, fetchErr := r.SearchRepository.FetchWithRetry(ctx, query)
    if fetchErr != nil {
      err = fetchErr
      return
    }
    for _, page := range fetched {
      result.Fetched += page.Count()
    }
    result.Pages += len(fetched)
    pages = append(pages, fetched...)
  }
  logger.Infoln("pages:", result.Pages, "tweets:", result.Fetched)

  if r.Store != nil && len(pages) > 0 {
    data, encodeErr := archives.Encode(pages)
    if encodeErr != nil {
      err = fmt.Errorf("archive pages: %w", encodeErr)
      return
    }
    key := fmt.Sprintf("raw/%s/%s%s", unit.Name, run.ID, archives.Extension)
    if err = r.Store.Write(ctx, key, data); err != nil {
      return
    }
    result.Archive = key
  }

  parser := &parsers.Parser{Unit: unit.Name}
  table, parseErr := parser.Parse(pages)
  if errors.Is(parseErr, parsers.ErrEmptyResult) {
    logger.Warnln("no tweets collected, nothing to export")
    return result, nil
  }
  if parseErr != nil {
    err = parseErr
    return
  }
  result.Merged = table.Len()

  if r.TweetsRepository != nil && r.TweetsRepository.Db != nil {
    saved, saveErr := r.TweetsRepository.Save(unit.Name, run.ID, table)
    if saveErr != nil {
      err = fmt.Errorf("save tweets: %w", saveErr)
      return
    }
    logger.Debugln("saved tweets:", saved)
  }

  if r.Store != nil {
    result.Exports, err = exporters.Export(
      ctx,
      r.Store,
      unit.Name,
      table,
      r.Settings.ExportFormats,
      parsers.ExportOrder(r.order(unit)),
    )
    if err != nil {
      return
    }
  }

  if r.TweetsRepository != nil {
    if publishErr := r.TweetsRepository.Publish(&CollectedPayload{
      Unit:  unit.Name,
      RunID: run.ID,
      Count: result.Merged,
      Order: r.order(unit),
    }); publishErr != nil {
      logger.Warnln("publish failed:", publishErr)
    }
  }
  return
}

// CollectAll runs units one after another, pausing between them. A failed unit stops the
// batch unless skipFailed is set.
func (r *CollectorsRepository) CollectAll(ctx context.Context, units []*Unit, skipFailed bool) (results []*CollectResult, err error) {
  for i, unit := range units {
    if i > 0 {
      fetched := 0
      if len(results) > 0 {
        fetched = results[len(results)-1].Fetched
      }
      if err = scrapers.Sleep(ctx, r.SearchRepository.Cooldown(fetched)); err != nil {
        return
      }
    }
    start := time.Now()
    result, collectErr := r.Collect(ctx, unit)
    if collectErr != nil {
      if skipFailed && ctx.Err() == nil {
        log.WithField("unit", unit.Name).Errorln("collect failed, skipping:", collectErr)
        results = append(results, result)
        continue
      }
      return results, fmt.Errorf("collect %s: %w", unit.Name, collectErr)
    }
    log.WithField("unit", unit.Name).Infof("collected %d tweets in %s", result.Merged, time.Since(start).Round(time.Millisecond))
    results = append(results, result)
  }
  return
}

func (r *CollectorsRepository) order(unit *Unit) string {
  if unit.Order != "" {
    return unit.Order
  }
  return r.Settings.ExportOrder
}

// Units builds one unit per window. Every query of a unit shares its window.
func Units(prefix string, windows []scrapers.Window, queries []string, search config.SearchConfig, order string) []*Unit {
  units := make([]*Unit, 0, len(windows))
  for _, window := range windows {
    unit := &Unit{
      Name:  prefix + window.Name(),
      Order: order,
    }
    for _, query := range queries {
      unit.Queries = append(unit.Queries, window.Query(query, search))
    }
    units = append(units, unit)
  }
  return units
}
