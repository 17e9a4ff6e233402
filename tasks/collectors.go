package tasks

import (
  "errors"
  "time"

  "github.com/hibiken/asynq"
  log "github.com/sirupsen/logrus"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/queue/asynq/jobs"
  "scraper.local/geotweets/repositories"
)

type CollectorsTask struct {
  Job             *jobs.Collectors
  AnsqContext     *common.AnsqClientContext
  TasksRepository *repositories.TasksRepository
}

func NewCollectorsTask(ansqContext *common.AnsqClientContext) *CollectorsTask {
  return &CollectorsTask{
    Job:         &jobs.Collectors{},
    AnsqContext: ansqContext,
    TasksRepository: &repositories.TasksRepository{
      Db: ansqContext.Db,
    },
  }
}

// Process enqueues pending collection tasks, oldest first. A task is enqueued at most once per 30s.
func (t *CollectorsTask) Process(limit int) (err error) {
  log.Debugln("tasks collectors process")
  tasks := t.TasksRepository.Ranking(
    []string{"id", "name", "timestamp"},
    map[string]interface{}{
      "status": config.TASK_STATUS_PENDING,
    },
    "timestamp",
    1,
    limit,
  )
  for _, task := range tasks {
    timestamp := time.Now().UnixMicro()
    if timestamp-task.Timestamp < 30000000 {
      continue
    }
    job, err := t.Job.Process(task.ID)
    if err != nil {
      continue
    }
    _, err = t.AnsqContext.Conn.Enqueue(
      job,
      asynq.Queue(config.ASYNQ_QUEUE_COLLECTORS),
      asynq.TaskID(task.ID),
      asynq.MaxRetry(0),
      asynq.Timeout(config.ASYNQ_COLLECTORS_TIMEOUT),
    )
    if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
      log.WithField("task", task.Name).Warnln("enqueue failed:", err)
      continue
    }
    t.TasksRepository.Update(task, "timestamp", timestamp)
  }
  return
}
