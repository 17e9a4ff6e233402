package collectors

import (
  "encoding/json"
  "fmt"
  "os"

  "github.com/urfave/cli/v2"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
  "scraper.local/geotweets/repositories/scrapers"
)

func NewBboxCommand() *cli.Command {
  var h Handler
  return &cli.Command{
    Name:  "bbox",
    Usage: "collect geotagged tweets, without retweets nor replies, inside a grid of bounding boxes",
    Flags: append(Flags(), &cli.StringFlag{
      Name:     "grid",
      Usage:    "JSON file with a list of {left, bottom, right, top} boxes",
      Required: true,
    }),
    Before: h.Before,
    Action: func(c *cli.Context) error {
      boxes, err := ReadGrid(c.String("grid"))
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      queries := make([]string, len(boxes))
      for i, box := range boxes {
        queries[i] = scrapers.BboxQuery(box)
      }
      params := h.Params(c, queries)
      if params.Order == "" {
        params.Order = "bbox"
      }
      if err := h.Run(c, config.TASK_ACTION_COLLECT_BBOX, params); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

// ReadGrid loads and validates a bounding box grid.
func ReadGrid(path string) ([]parsers.BoundingBox, error) {
  buf, err := os.ReadFile(path)
  if err != nil {
    return nil, err
  }
  var boxes []parsers.BoundingBox
  if err := json.Unmarshal(buf, &boxes); err != nil {
    return nil, fmt.Errorf("parse grid %s: %w", path, err)
  }
  if len(boxes) == 0 {
    return nil, fmt.Errorf("grid %s has no boxes", path)
  }
  for i, box := range boxes {
    if err := box.Validate(); err != nil {
      return nil, fmt.Errorf("grid %s box %d: %w", path, i, err)
    }
  }
  return boxes, nil
}
