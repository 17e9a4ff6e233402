package queue

import (
  "context"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  workers "scraper.local/geotweets/queue/asynq"
)

type AsynqHandler struct {
  Db       *gorm.DB
  Rdb      *redis.Client
  Ctx      context.Context
  Settings *common.Settings
}

func NewAsynqCommand() *cli.Command {
  var h AsynqHandler
  return &cli.Command{
    Name:  "asynq",
    Usage: "run the collection workers",
    Before: func(c *cli.Context) error {
      settings, err := common.NewSettings()
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = AsynqHandler{
        Db:       common.NewDB(),
        Rdb:      common.NewRedis(),
        Ctx:      context.Background(),
        Settings: settings,
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *AsynqHandler) run() error {
  log.Infoln("asynq queue running...")

  mux := asynq.NewServeMux()
  worker := common.NewAsynqServer()

  nc := common.NewNats()
  defer nc.Close()

  ansqContext := &common.AnsqServerContext{
    Db:       h.Db,
    Rdb:      h.Rdb,
    Ctx:      h.Ctx,
    Mux:      mux,
    Nats:     nc,
    Settings: h.Settings,
  }

  if err := workers.NewWorkers(ansqContext).Register(); err != nil {
    return err
  }

  return worker.Run(mux)
}
