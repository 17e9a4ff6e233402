package commands

import (
  "context"
  "fmt"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-redis/redis/v8"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/api/v1"
  "scraper.local/geotweets/common"
)

type ApiHandler struct {
  Db  *gorm.DB
  Rdb *redis.Client
  Ctx context.Context
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = ApiHandler{
        Db:  common.NewDB(),
        Rdb: common.NewRedis(),
        Ctx: context.Background(),
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

func (h *ApiHandler) Run() error {
  port := common.GetEnvInt("SCRAPER_API_PORT")
  if port == 0 {
    port = 8080
  }
  log.Infoln("api running on port", port)

  apiContext := &common.ApiContext{
    Db:  h.Db,
    Rdb: h.Rdb,
    Ctx: h.Ctx,
  }

  r := chi.NewRouter()
  r.Route("/v1", func(r chi.Router) {
    r.Mount("/tweets", v1.NewTweetsRouter(apiContext))
    r.Mount("/tasks", v1.NewTasksRouter(apiContext))
  })

  return http.ListenAndServe(fmt.Sprintf("127.0.0.1:%v", port), r)
}
