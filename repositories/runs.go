package repositories

import (
  "time"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/models"
)

type RunsRepository struct {
  Db *gorm.DB
}

func (r *RunsRepository) Create(unit *Unit) (run *models.Run, err error) {
  run = &models.Run{
    ID:     xid.New().String(),
    Unit:   unit.Name,
    Status: config.TASK_STATUS_RUNNING,
  }
  if len(unit.Queries) > 0 {
    run.Query = unit.Queries[0].Query
    run.StartTime = unit.Queries[0].Start
    run.EndTime = unit.Queries[0].End
  }
  if len(run.Query) > 1024 {
    run.Query = run.Query[:1024]
  }
  if r.Db == nil {
    return
  }
  err = r.Db.Create(run).Error
  return
}

func (r *RunsRepository) Finish(run *models.Run, result *CollectResult, failure error) error {
  values := map[string]interface{}{
    "pages":       result.Pages,
    "fetched":     result.Fetched,
    "merged":      result.Merged,
    "archive":     result.Archive,
    "status":      config.TASK_STATUS_FINISHED,
    "finished_at": time.Now().UnixMicro(),
  }
  if failure != nil {
    message := failure.Error()
    if len(message) > 2048 {
      message = message[:2048]
    }
    values["error"] = message
    values["status"] = config.TASK_STATUS_FAILED
  }
  if r.Db == nil {
    return nil
  }
  return r.Db.Model(run).Updates(values).Error
}
