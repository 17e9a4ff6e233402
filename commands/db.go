package commands

import (
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/models"
)

type DbHandler struct {
  Db *gorm.DB
}

func NewDbCommand() *cli.Command {
  var h DbHandler
  return &cli.Command{
    Name:  "db",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = DbHandler{
        Db: common.NewDB(),
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "migrate",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.migrate(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *DbHandler) migrate() error {
  log.Infoln("process migrator")
  return h.Db.AutoMigrate(
    &models.Tweet{},
    &models.Run{},
    &models.Task{},
  )
}
