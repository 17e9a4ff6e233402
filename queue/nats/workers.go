package nats

import (
  "scraper.local/geotweets/common"
  "scraper.local/geotweets/queue/nats/workers"
)

type Workers struct {
  NatsContext *common.NatsContext
}

func NewWorkers(natsContext *common.NatsContext) *Workers {
  return &Workers{
    NatsContext: natsContext,
  }
}

func (h *Workers) Subscribe() error {
  return workers.NewExports(h.NatsContext).Subscribe()
}
