package collectors

import (
  "context"
  "fmt"

  "github.com/nats-io/nats.go"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories"
)

// Handler holds what every collect subcommand shares: settings, search defaults and storage.
type Handler struct {
  Ctx      context.Context
  Settings *common.Settings
  Search   config.SearchConfig
  Db       *gorm.DB
  Nats     *nats.Conn
}

func Flags() []cli.Flag {
  return []cli.Flag{
    &cli.StringFlag{
      Name:     "start",
      Usage:    "first day to collect, YYYY-MM-DD",
      Required: true,
    },
    &cli.StringFlag{
      Name:     "end",
      Usage:    "day after the last one to collect, YYYY-MM-DD",
      Required: true,
    },
    &cli.BoolFlag{
      Name:  "bulk",
      Usage: "collect the whole period as one unit",
    },
    &cli.IntFlag{
      Name:  "intervals",
      Usage: "split the period into this many equal units instead of days",
    },
    &cli.StringFlag{
      Name:  "prefix",
      Usage: "export file prefix, defaults to filename_prefix of the search config",
    },
    &cli.StringFlag{
      Name:  "order",
      Usage: "export column order: full, bbox or geo",
    },
    &cli.BoolFlag{
      Name:  "skip-failed",
      Usage: "continue with the next unit when one fails",
      Value: true,
    },
    &cli.BoolFlag{
      Name:  "no-db",
      Usage: "do not persist tweets nor announce collected units",
    },
    &cli.StringFlag{
      Name:  "apply",
      Usage: "register a queued task with this name instead of collecting now",
    },
  }
}

func (h *Handler) Before(c *cli.Context) (err error) {
  h.Ctx = c.Context
  if h.Settings, err = common.NewSettings(); err != nil {
    return cli.Exit(err.Error(), 1)
  }
  if h.Search, err = config.LoadSearchConfig(h.Settings.SearchConfig); err != nil {
    return cli.Exit(err.Error(), 1)
  }
  if !c.Bool("no-db") || c.String("apply") != "" {
    h.Db = common.NewDB()
  }
  if !c.Bool("no-db") && c.String("apply") == "" {
    h.Nats = common.NewNats()
  }
  return nil
}

func (h *Handler) Params(c *cli.Context, queries []string) *repositories.CollectParams {
  return &repositories.CollectParams{
    Queries:   queries,
    Start:     c.String("start"),
    End:       c.String("end"),
    Intervals: c.Int("intervals"),
    Bulk:      c.Bool("bulk"),
    Prefix:    c.String("prefix"),
    Order:     c.String("order"),
  }
}

// Run collects params now, or registers them as a task when --apply names one.
func (h *Handler) Run(c *cli.Context, action int, params *repositories.CollectParams) error {
  units, err := params.Units(h.Search)
  if err != nil {
    return err
  }

  if name := c.String("apply"); name != "" {
    repository := &repositories.TasksRepository{
      Db: h.Db,
    }
    task, err := repository.Apply(name, action, params.Params())
    if err != nil {
      return err
    }
    log.WithField("task", task.Name).Infoln("task applied, units:", len(units))
    return nil
  }

  if h.Nats != nil {
    defer h.Nats.Close()
  }
  repository, err := repositories.NewCollectorsRepository(h.Ctx, h.Settings, h.Db, h.Nats)
  if err != nil {
    return err
  }
  defer repository.Store.Close()

  results, err := repository.CollectAll(h.Ctx, units, c.Bool("skip-failed"))
  merged := 0
  for _, result := range results {
    merged += result.Merged
  }
  log.Infoln(fmt.Sprintf("units: %d/%d, tweets: %d", len(results), len(units), merged))
  return err
}
