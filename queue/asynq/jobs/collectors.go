package jobs

import (
  "encoding/json"

  "github.com/hibiken/asynq"

  "scraper.local/geotweets/config"
)

type Collectors struct{}

func (h *Collectors) Process(taskID string) (*asynq.Task, error) {
  payload, err := json.Marshal(ProcessPayload{taskID})
  if err != nil {
    return nil, err
  }
  return asynq.NewTask(config.ASYNQ_JOBS_COLLECTORS_PROCESS, payload), nil
}
