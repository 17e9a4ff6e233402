package commands

import (
  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/commands/collectors"
)

func NewCollectCommand() *cli.Command {
  return &cli.Command{
    Name:  "collect",
    Usage: "collect geotagged tweets from the full-archive search",
    Subcommands: []*cli.Command{
      collectors.NewSearchCommand(),
      collectors.NewBboxCommand(),
      collectors.NewUsersCommand(),
    },
  }
}
