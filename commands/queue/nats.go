package queue

import (
  "context"
  "os"
  "os/signal"
  "syscall"

  "github.com/go-redis/redis/v8"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/queue/nats"
)

type NatsHandler struct {
  Db       *gorm.DB
  Rdb      *redis.Client
  Ctx      context.Context
  Settings *common.Settings
}

func NewNatsCommand() *cli.Command {
  var h NatsHandler
  return &cli.Command{
    Name:  "nats",
    Usage: "run the export subscribers",
    Before: func(c *cli.Context) error {
      settings, err := common.NewSettings()
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = NatsHandler{
        Db:       common.NewDB(),
        Rdb:      common.NewRedis(),
        Ctx:      context.Background(),
        Settings: settings,
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *NatsHandler) Run() error {
  log.Infoln("nats running...")

  nc := common.NewNats()
  defer nc.Close()

  natsContext := &common.NatsContext{
    Db:       h.Db,
    Rdb:      h.Rdb,
    Ctx:      h.Ctx,
    Conn:     nc,
    Settings: h.Settings,
  }
  if err := nats.NewWorkers(natsContext).Subscribe(); err != nil {
    return err
  }

  sig := make(chan os.Signal, 1)
  signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
  <-sig

  return nil
}
