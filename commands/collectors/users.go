package collectors

import (
  "encoding/csv"
  "fmt"
  "io"
  "os"
  "strings"

  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories/scrapers"
)

const UserColumn = "usr_id"

func NewUsersCommand() *cli.Command {
  var h Handler
  return &cli.Command{
    Name:  "users",
    Usage: "collect the timelines of a list of users, one unit per user",
    Flags: append(Flags(), &cli.StringFlag{
      Name:     "users",
      Usage:    "CSV file with a " + UserColumn + " column",
      Required: true,
    }),
    Before: h.Before,
    Action: func(c *cli.Context) error {
      ids, err := ReadUsers(c.String("users"))
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      queries := make([]string, len(ids))
      for i, id := range ids {
        queries[i] = scrapers.UserQuery(id)
      }
      params := h.Params(c, queries)
      params.PerQuery = true
      if err := h.Run(c, config.TASK_ACTION_COLLECT_USERS, params); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

// ReadUsers returns the distinct user ids of the usr_id column, in file order.
func ReadUsers(path string) ([]string, error) {
  f, err := os.Open(path)
  if err != nil {
    return nil, err
  }
  defer f.Close()
  return readUsers(f, path)
}

func readUsers(r io.Reader, name string) (ids []string, err error) {
  reader := csv.NewReader(r)
  reader.FieldsPerRecord = -1
  header, err := reader.Read()
  if err != nil {
    return nil, fmt.Errorf("read %s header: %w", name, err)
  }
  column := -1
  for i, field := range header {
    if strings.TrimSpace(strings.TrimPrefix(field, "\ufeff")) == UserColumn {
      column = i
    }
  }
  if column < 0 {
    return nil, fmt.Errorf("%s has no %s column", name, UserColumn)
  }
  seen := map[string]bool{}
  for {
    record, err := reader.Read()
    if err == io.EOF {
      break
    }
    if err != nil {
      return nil, fmt.Errorf("read %s: %w", name, err)
    }
    if column >= len(record) {
      continue
    }
    id := strings.TrimSpace(record[column])
    if id == "" || seen[id] {
      continue
    }
    seen[id] = true
    ids = append(ids, id)
  }
  if len(ids) == 0 {
    return nil, fmt.Errorf("%s has no users", name)
  }
  return ids, nil
}
