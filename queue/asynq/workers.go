package asynq

import (
  "scraper.local/geotweets/common"
  "scraper.local/geotweets/queue/asynq/workers"
)

type Workers struct {
  AnsqContext *common.AnsqServerContext
}

func NewWorkers(ansqContext *common.AnsqServerContext) *Workers {
  return &Workers{
    AnsqContext: ansqContext,
  }
}

func (h *Workers) Register() error {
  return workers.NewCollectors(h.AnsqContext).Register()
}
