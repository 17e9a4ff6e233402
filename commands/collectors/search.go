package collectors

import (
  "errors"

  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/config"
)

func NewSearchCommand() *cli.Command {
  var h Handler
  return &cli.Command{
    Name:  "search",
    Usage: "collect tweets matching a search query",
    Flags: append(Flags(), &cli.StringFlag{
      Name:  "query",
      Usage: "search query, defaults to query of the search config",
    }),
    Before: h.Before,
    Action: func(c *cli.Context) error {
      query := c.String("query")
      if query == "" {
        query = h.Search.Query
      }
      if query == "" {
        return cli.Exit(errors.New("query can not be empty").Error(), 1)
      }
      if err := h.Run(c, config.TASK_ACTION_COLLECT_SEARCH, h.Params(c, []string{query})); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}
