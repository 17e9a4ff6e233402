package workers

type ProcessPayload struct {
  TaskID string `json:"task_id"`
}
