package v1

import (
  "net/http"
  "strconv"
  "strings"

  "github.com/go-chi/chi/v5"

  "scraper.local/geotweets/api"
  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/repositories"
)

type TasksHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.TasksRepository
}

func NewTasksRouter(apiContext *common.ApiContext) http.Handler {
  h := TasksHandler{
    ApiContext: apiContext,
    Repository: &repositories.TasksRepository{
      Db: apiContext.Db,
    },
  }

  r := chi.NewRouter()
  r.Get("/", h.Listings)
  r.Post("/", h.Apply)
  r.Put("/", h.Apply)

  return r
}

func (h *TasksHandler) Listings(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  current, pageSize, ok := api.Paging(r)
  if !ok {
    response.Error(http.StatusForbidden, 1004, "paging not valid")
    return
  }

  q := r.URL.Query()
  conditions := map[string]interface{}{}
  if q.Get("name") != "" {
    conditions["name"] = q.Get("name")
  }
  if q.Get("action") != "" {
    conditions["action"], _ = strconv.Atoi(q.Get("action"))
  }
  if q.Get("status") != "" {
    conditions["status"], _ = strconv.Atoi(q.Get("status"))
  }

  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  total := h.Repository.Count(conditions)
  tasks := h.Repository.Listings(conditions, current, pageSize)
  data := make([]*TaskInfo, len(tasks))
  for i, task := range tasks {
    data[i] = &TaskInfo{
      ID:        task.ID,
      Name:      task.Name,
      Action:    task.Action,
      Params:    task.Params,
      Timestamp: task.Timestamp,
      Status:    task.Status,
      CreatedAt: task.CreatedAt,
      UpdatedAt: task.UpdatedAt,
    }
  }

  response.Pagenate(data, total, current, pageSize)
}

// Apply registers a collection task from a form: name, action, queries (';' separated),
// start, end and optionally intervals, bulk, per_query, prefix and order.
func (h *TasksHandler) Apply(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  r.ParseForm()
  d := r.Form

  name := strings.TrimSpace(d.Get("name"))
  if name == "" {
    response.Error(http.StatusForbidden, 1004, "name is empty")
    return
  }
  action, _ := strconv.Atoi(d.Get("action"))
  if action < config.TASK_ACTION_COLLECT_SEARCH || action > config.TASK_ACTION_COLLECT_USERS {
    response.Error(http.StatusForbidden, 1004, "action not valid")
    return
  }

  params := &repositories.CollectParams{
    Start:  d.Get("start"),
    End:    d.Get("end"),
    Prefix: d.Get("prefix"),
    Order:  d.Get("order"),
  }
  for _, query := range strings.Split(d.Get("queries"), ";") {
    if query = strings.TrimSpace(query); query != "" {
      params.Queries = append(params.Queries, query)
    }
  }
  params.Intervals, _ = strconv.Atoi(d.Get("intervals"))
  params.Bulk, _ = strconv.ParseBool(d.Get("bulk"))
  params.PerQuery, _ = strconv.ParseBool(d.Get("per_query"))
  if action == config.TASK_ACTION_COLLECT_USERS {
    params.PerQuery = true
  }

  if _, err := params.Units(config.DefaultSearchConfig()); err != nil {
    response.Error(http.StatusForbidden, 1004, err.Error())
    return
  }

  task, err := h.Repository.Apply(name, action, params.Params())
  if err != nil {
    response.Error(http.StatusInternalServerError, 1000, "apply task failed")
    return
  }

  response.Json(&TaskInfo{
    ID:        task.ID,
    Name:      task.Name,
    Action:    task.Action,
    Params:    task.Params,
    Timestamp: task.Timestamp,
    Status:    task.Status,
  })
}
