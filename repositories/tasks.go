package repositories

import (
  "errors"
  "fmt"
  "time"

  "github.com/rs/xid"
  "gorm.io/gorm"

  "scraper.local/geotweets/config"
  "scraper.local/geotweets/models"
)

type TasksRepository struct {
  Db *gorm.DB
}

func (r *TasksRepository) Find(id string) (task *models.Task, err error) {
  err = r.Db.First(&task, "id=?", id).Error
  return
}

func (r *TasksRepository) Count(conditions map[string]interface{}) int64 {
  var total int64
  query := r.Db.Model(&models.Task{})
  r.filter(query, conditions)
  query.Count(&total)
  return total
}

func (r *TasksRepository) Listings(conditions map[string]interface{}, current int, pageSize int) []*models.Task {
  var tasks []*models.Task
  query := r.Db.Select([]string{
    "id",
    "name",
    "action",
    "params",
    "timestamp",
    "status",
    "created_at",
    "updated_at",
  })
  r.filter(query, conditions)
  query.Order("created_at desc")
  query.Offset((current - 1) * pageSize).Limit(pageSize).Find(&tasks)
  return tasks
}

// Ranking pages through tasks by sortField, continuing past conditions["timestamp"].
func (r *TasksRepository) Ranking(
  fields []string,
  conditions map[string]interface{},
  sortField string,
  sortType int,
  limit int,
) []*models.Task {
  var tasks []*models.Task
  query := r.Db.Select(fields)
  if _, ok := conditions["action"]; ok {
    query.Where("action", conditions["action"].(int))
  }
  if _, ok := conditions["ids"]; ok {
    query.Where("id IN ?", conditions["ids"].([]string))
  }
  if _, ok := conditions["timestamp"]; ok {
    if sortType == 1 {
      query.Where("timestamp>?", conditions["timestamp"].(int64))
    } else if sortType == -1 {
      query.Where("timestamp<?", conditions["timestamp"].(int64))
    }
  }
  if _, ok := conditions["status"]; ok {
    query.Where("status", conditions["status"].(int))
  } else {
    query.Where("status", config.TASK_STATUS_PENDING)
  }
  if sortType == 1 {
    query.Order(fmt.Sprintf("%v ASC", sortField))
  } else if sortType == -1 {
    query.Order(fmt.Sprintf("%v DESC", sortField))
  }
  query.Limit(limit).Find(&tasks)
  return tasks
}

// Apply registers a collection task by name. Finished or failed tasks are rearmed.
func (r *TasksRepository) Apply(name string, action int, params map[string]interface{}) (task *models.Task, err error) {
  task = &models.Task{}
  result := r.Db.Where("name", name).Take(task)
  if errors.Is(result.Error, gorm.ErrRecordNotFound) {
    task = &models.Task{
      ID:        xid.New().String(),
      Name:      name,
      Action:    action,
      Params:    params,
      Timestamp: time.Now().UnixMicro(),
      Status:    config.TASK_STATUS_PENDING,
    }
    err = r.Db.Create(task).Error
    return
  }
  if result.Error != nil {
    return nil, result.Error
  }
  values := map[string]interface{}{
    "action": action,
    "params": params,
  }
  if task.Status != config.TASK_STATUS_PENDING && task.Status != config.TASK_STATUS_RUNNING {
    values["status"] = config.TASK_STATUS_PENDING
    values["timestamp"] = time.Now().UnixMicro()
  }
  err = r.Db.Model(task).Updates(values).Error
  return
}

func (r *TasksRepository) Update(task *models.Task, column string, value interface{}) error {
  return r.Db.Model(task).Update(column, value).Error
}

func (r *TasksRepository) Updates(task *models.Task, values map[string]interface{}) error {
  return r.Db.Model(task).Updates(values).Error
}

func (r *TasksRepository) Delete(id string) error {
  return r.Db.Delete(&models.Task{ID: id}).Error
}

func (r *TasksRepository) filter(query *gorm.DB, conditions map[string]interface{}) {
  if _, ok := conditions["name"]; ok {
    query.Where("name=?", conditions["name"].(string))
  }
  if _, ok := conditions["action"]; ok {
    query.Where("action=?", conditions["action"].(int))
  }
  if _, ok := conditions["status"]; ok {
    query.Where("status", conditions["status"].(int))
  } else {
    query.Where("status IN ?", []int{config.TASK_STATUS_PENDING, config.TASK_STATUS_RUNNING})
  }
}
