package workers

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/hibiken/asynq"
  log "github.com/sirupsen/logrus"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories"
)

type Collectors struct {
  AnsqContext     *common.AnsqServerContext
  Repository      *repositories.CollectorsRepository
  TasksRepository *repositories.TasksRepository
  Search          config.SearchConfig
}

func NewCollectors(ansqContext *common.AnsqServerContext) *Collectors {
  return &Collectors{
    AnsqContext: ansqContext,
    TasksRepository: &repositories.TasksRepository{
      Db: ansqContext.Db,
    },
  }
}

func (h *Collectors) Process(ctx context.Context, t *asynq.Task) error {
  var payload ProcessPayload
  if err := json.Unmarshal(t.Payload(), &payload); err != nil {
    return fmt.Errorf("decode payload: %w", asynq.SkipRetry)
  }

  mutex := common.NewMutex(
    h.AnsqContext.Rdb,
    h.AnsqContext.Ctx,
    fmt.Sprintf(config.LOCKS_TASKS_COLLECTORS_PROCESS, payload.TaskID),
  )
  if !mutex.Lock(config.ASYNQ_COLLECTORS_TIMEOUT) {
    return nil
  }
  defer mutex.Unlock()

  task, err := h.TasksRepository.Find(payload.TaskID)
  if errors.Is(err, gorm.ErrRecordNotFound) {
    log.WithField("task", payload.TaskID).Warnln("task not exists")
    return nil
  }
  if err != nil {
    return err
  }
  if task.Status != config.TASK_STATUS_PENDING {
    return nil
  }
  logger := log.WithField("task", task.Name)

  params, err := repositories.ParseCollectParams(task.Params)
  if err != nil {
    logger.Errorln("invalid params:", err)
    return h.TasksRepository.Update(task, "status", config.TASK_STATUS_FAILED)
  }
  units, err := params.Units(h.Search)
  if err != nil {
    logger.Errorln("invalid params:", err)
    return h.TasksRepository.Update(task, "status", config.TASK_STATUS_FAILED)
  }

  h.TasksRepository.Update(task, "status", config.TASK_STATUS_RUNNING)
  results, err := h.Repository.CollectAll(ctx, units, h.AnsqContext.Settings.SkipFailed)
  status := config.TASK_STATUS_FINISHED
  if err != nil {
    logger.Errorln("collect failed:", err)
    status = config.TASK_STATUS_FAILED
  }
  merged := 0
  for _, result := range results {
    merged += result.Merged
  }
  logger.Infoln("units:", len(results), "tweets:", merged)
  return h.TasksRepository.Updates(task, map[string]interface{}{
    "status":    status,
    "timestamp": time.Now().UnixMicro(),
  })
}

func (h *Collectors) Register() (err error) {
  settings := h.AnsqContext.Settings
  h.Search, err = config.LoadSearchConfig(settings.SearchConfig)
  if err != nil {
    return
  }
  h.Repository, err = repositories.NewCollectorsRepository(
    h.AnsqContext.Ctx,
    settings,
    h.AnsqContext.Db,
    h.AnsqContext.Nats,
  )
  if err != nil {
    return
  }
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_COLLECTORS_PROCESS, h.Process)
  return
}
