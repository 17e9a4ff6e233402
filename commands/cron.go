package commands

import (
  "context"
  "os"
  "os/signal"
  "syscall"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/robfig/cron/v3"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/tasks"
)

type CronHandler struct {
  Db    *gorm.DB
  Rdb   *redis.Client
  Asynq *asynq.Client
  Ctx   context.Context
}

func NewCronCommand() *cli.Command {
  var h CronHandler
  return &cli.Command{
    Name:  "cron",
    Usage: "enqueue pending collection tasks",
    Before: func(c *cli.Context) error {
      h = CronHandler{
        Db:    common.NewDB(),
        Rdb:   common.NewRedis(),
        Asynq: common.NewAsynqClient(),
        Ctx:   context.Background(),
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

func (h *CronHandler) run() error {
  log.Infoln("cron running...")

  ansqContext := &common.AnsqClientContext{
    Db:   h.Db,
    Rdb:  h.Rdb,
    Ctx:  h.Ctx,
    Conn: h.Asynq,
  }

  collectors := tasks.NewCollectorsTask(ansqContext)

  c := cron.New()
  c.AddFunc("@every 30s", func() {
    collectors.Process(10)
  })
  c.Start()
  defer c.Stop()

  sig := make(chan os.Signal, 1)
  signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
  <-sig

  return nil
}
