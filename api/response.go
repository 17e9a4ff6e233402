package api

import (
  "encoding/json"
  "net/http"
  "strconv"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

type ErrorResponse struct {
  Code    int    `json:"code"`
  Message string `json:"message"`
}

type PageResponse struct {
  Data     interface{} `json:"data"`
  Total    int64       `json:"total"`
  Current  int         `json:"current"`
  PageSize int         `json:"page_size"`
}

func (h *ResponseHandler) Json(data interface{}) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(http.StatusOK)
  json.NewEncoder(h.Writer).Encode(map[string]interface{}{
    "success": true,
    "data":    data,
  })
}

func (h *ResponseHandler) Pagenate(data interface{}, total int64, current int, pageSize int) {
  h.Json(&PageResponse{
    Data:     data,
    Total:    total,
    Current:  current,
    PageSize: pageSize,
  })
}

func (h *ResponseHandler) Error(status int, code int, message string) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(status)
  json.NewEncoder(h.Writer).Encode(map[string]interface{}{
    "success": false,
    "error": &ErrorResponse{
      Code:    code,
      Message: message,
    },
  })
}

// Paging reads current and page_size, defaulting to page 1 of 50.
func Paging(r *http.Request) (current int, pageSize int, ok bool) {
  q := r.URL.Query()
  current, pageSize = 1, 50
  var err error
  if q.Has("current") {
    if current, err = strconv.Atoi(q.Get("current")); err != nil || current < 1 {
      return 0, 0, false
    }
  }
  if q.Has("page_size") {
    if pageSize, err = strconv.Atoi(q.Get("page_size")); err != nil || pageSize < 1 || pageSize > 100 {
      return 0, 0, false
    }
  }
  return current, pageSize, true
}
