package main

import (
  "os"
  "path"
  "path/filepath"

  "github.com/joho/godotenv"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/commands"
  "scraper.local/geotweets/common"
)

func main() {
  if err := godotenv.Load(path.Join(filepath.Dir(os.Args[0]), ".env")); err != nil {
    dir, _ := os.Getwd()
    godotenv.Load(path.Join(dir, ".env"))
  }
  common.SetupLogger()

  app := &cli.App{
    Name:  "geotweets",
    Usage: "collect, merge and export geotagged tweets",
    Commands: []*cli.Command{
      commands.NewCollectCommand(),
      commands.NewParseCommand(),
      commands.NewExportCommand(),
      commands.NewDbCommand(),
      commands.NewTasksCommand(),
      commands.NewApiCommand(),
      commands.NewQueueCommand(),
      commands.NewCronCommand(),
    },
    Version: "0.1.0",
  }

  if err := app.Run(os.Args); err != nil {
    log.Fatalln("error", err)
  }
}
