package commands

import (
  "context"
  "errors"
  "path/filepath"
  "strings"

  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/parsers"
  "scraper.local/geotweets/repositories/archives"
  "scraper.local/geotweets/repositories/exporters"
)

type ParseHandler struct {
  Ctx      context.Context
  Settings *common.Settings
}

func NewParseCommand() *cli.Command {
  var h ParseHandler
  return &cli.Command{
    Name:      "parse",
    Usage:     "merge a stored fragment stream into one table and export it",
    ArgsUsage: "<file>",
    Flags: []cli.Flag{
      &cli.IntFlag{
        Name:  "preview",
        Usage: "print this many located rows instead of exporting",
      },
      &cli.StringFlag{
        Name:  "output",
        Usage: "export prefix, defaults to the file name",
      },
      &cli.StringFlag{
        Name:  "order",
        Usage: "export column order: full, bbox or geo",
      },
    },
    Before: func(c *cli.Context) (err error) {
      h.Ctx = c.Context
      if h.Settings, err = common.NewSettings(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      path := c.Args().First()
      if path == "" {
        return cli.Exit("file can not be empty", 1)
      }
      if err := h.Run(c, path); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ParseHandler) Run(c *cli.Context, path string) error {
  fragments, err := archives.ReadFile(path)
  if err != nil {
    return err
  }
  name := strings.TrimSuffix(filepath.Base(path), archives.Extension)
  name = strings.TrimSuffix(name, filepath.Ext(name))

  parser := &parsers.Parser{Unit: name}
  table, err := parser.ParseFragments(fragments)
  if errors.Is(err, parsers.ErrEmptyResult) {
    log.WithField("file", path).Warnln("no tweets in file")
    return nil
  }
  if err != nil {
    return err
  }

  if limit := c.Int("preview"); limit > 0 {
    Preview(c.App.Writer, table, limit)
    return nil
  }

  store, err := exporters.NewStore(h.Ctx, h.Settings.ExportUrl, h.Settings.ExportDir)
  if err != nil {
    return err
  }
  defer store.Close()

  prefix := c.String("output")
  if prefix == "" {
    prefix = name
  }
  order := c.String("order")
  if order == "" {
    order = h.Settings.ExportOrder
  }
  _, err = exporters.Export(h.Ctx, store, prefix, table, h.Settings.ExportFormats, parsers.ExportOrder(order))
  return err
}
