package commands

import (
  "context"

  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/parsers"
  "scraper.local/geotweets/repositories/exporters"
)

type ExportHandler struct {
  Ctx      context.Context
  Settings *common.Settings
  Store    *exporters.Store
}

func NewExportCommand() *cli.Command {
  var h ExportHandler
  return &cli.Command{
    Name:  "export",
    Usage: "",
    Before: func(c *cli.Context) (err error) {
      h.Ctx = c.Context
      if h.Settings, err = common.NewSettings(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      if h.Store, err = exporters.NewStore(h.Ctx, h.Settings.ExportUrl, h.Settings.ExportDir); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
    After: func(c *cli.Context) error {
      if h.Store != nil {
        h.Store.Close()
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "combine",
        Usage: "merge every parquet snapshot under a prefix into one deduplicated export",
        Flags: []cli.Flag{
          &cli.StringFlag{
            Name:     "prefix",
            Usage:    "snapshot prefix, e.g. tweets_",
            Required: true,
          },
          &cli.StringFlag{
            Name:  "output",
            Usage: "export prefix, defaults to <prefix>combined",
          },
          &cli.StringFlag{
            Name:  "order",
            Usage: "export column order: full, bbox or geo",
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Combine(c.String("prefix"), c.String("output"), c.String("order")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *ExportHandler) Combine(prefix string, output string, order string) error {
  table, err := exporters.Combine(h.Ctx, h.Store, prefix)
  if err != nil {
    return err
  }
  if table.Len() == 0 {
    log.WithField("prefix", prefix).Warnln("no snapshots to combine")
    return nil
  }
  if output == "" {
    output = prefix + "combined"
  }
  if order == "" {
    order = h.Settings.ExportOrder
  }
  formats := make([]string, 0, len(h.Settings.ExportFormats))
  for _, format := range h.Settings.ExportFormats {
    // the combined snapshot would be picked up by the next combine
    if format != exporters.FormatParquet {
      formats = append(formats, format)
    }
  }
  _, err = exporters.Export(h.Ctx, h.Store, output, table, formats, parsers.ExportOrder(order))
  return err
}
