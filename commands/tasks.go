package commands

import (
  "encoding/json"
  "fmt"

  "github.com/jedib0t/go-pretty/v6/table"
  log "github.com/sirupsen/logrus"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories"
)

type TasksHandler struct {
  Db         *gorm.DB
  Repository *repositories.TasksRepository
}

var taskStatuses = map[int]string{
  config.TASK_STATUS_PENDING:  "pending",
  config.TASK_STATUS_RUNNING:  "running",
  config.TASK_STATUS_FINISHED: "finished",
  config.TASK_STATUS_FAILED:   "failed",
}

func NewTasksCommand() *cli.Command {
  var h TasksHandler
  return &cli.Command{
    Name:  "tasks",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = TasksHandler{
        Db: common.NewDB(),
      }
      h.Repository = &repositories.TasksRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "list",
        Usage: "",
        Flags: []cli.Flag{
          &cli.IntFlag{
            Name:  "status",
            Usage: "1 pending, 2 running, 3 finished, 4 failed",
          },
          &cli.IntFlag{
            Name:  "limit",
            Value: 50,
          },
        },
        Action: func(c *cli.Context) error {
          conditions := map[string]interface{}{}
          if status := c.Int("status"); status > 0 {
            conditions["status"] = status
          }
          h.List(c, conditions, c.Int("limit"))
          return nil
        },
      },
      {
        Name:      "retry",
        Usage:     "rearm a finished or failed task",
        ArgsUsage: "<name>",
        Action: func(c *cli.Context) error {
          if err := h.Retry(c.Args().First()); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:      "delete",
        Usage:     "",
        ArgsUsage: "<id>",
        Action: func(c *cli.Context) error {
          if err := h.Repository.Delete(c.Args().First()); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *TasksHandler) List(c *cli.Context, conditions map[string]interface{}, limit int) {
  tasks := h.Repository.Listings(conditions, 1, limit)

  tw := table.NewWriter()
  tw.SetOutputMirror(c.App.Writer)
  tw.SetStyle(table.StyleLight)
  tw.AppendHeader(table.Row{"ID", "Name", "Action", "Status", "Params"})
  for _, task := range tasks {
    params, _ := json.Marshal(task.Params)
    tw.AppendRow(table.Row{task.ID, task.Name, task.Action, taskStatuses[task.Status], string(params)})
  }
  tw.AppendFooter(table.Row{"", "", "", "total", h.Repository.Count(conditions)})
  tw.Render()
}

func (h *TasksHandler) Retry(name string) error {
  if name == "" {
    return fmt.Errorf("task name can not be empty")
  }
  tasks := h.Repository.Listings(map[string]interface{}{"name": name, "status": config.TASK_STATUS_FAILED}, 1, 1)
  if len(tasks) == 0 {
    tasks = h.Repository.Listings(map[string]interface{}{"name": name, "status": config.TASK_STATUS_FINISHED}, 1, 1)
  }
  if len(tasks) == 0 {
    return fmt.Errorf("task %s is not finished nor failed", name)
  }
  task, err := h.Repository.Apply(tasks[0].Name, tasks[0].Action, tasks[0].Params)
  if err != nil {
    return err
  }
  log.WithField("task", task.Name).Infoln("task rearmed")
  return nil
}
