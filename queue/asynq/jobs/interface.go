package jobs

type ProcessPayload struct {
  TaskID string `json:"task_id"`
}
