package api

import (
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "testing"

  "github.com/stretchr/testify/require"
)

func TestPagenate(t *testing.T) {
  rec := httptest.NewRecorder()
  response := &ResponseHandler{Writer: rec}
  response.Pagenate([]string{"a", "b"}, 12, 2, 2)

  require.Equal(t, http.StatusOK, rec.Code)
  require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
  var body struct {
    Success bool         `json:"success"`
    Data    PageResponse `json:"data"`
  }
  require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
  require.True(t, body.Success)
  require.EqualValues(t, 12, body.Data.Total)
  require.Equal(t, 2, body.Data.Current)
  require.Equal(t, []interface{}{"a", "b"}, body.Data.Data)
}

func TestPaging(t *testing.T) {
  current, pageSize, ok := Paging(httptest.NewRequest(http.MethodGet, "/", nil))
  require.True(t, ok)
  require.Equal(t, 1, current)
  require.Equal(t, 50, pageSize)

  current, pageSize, ok = Paging(httptest.NewRequest(http.MethodGet, "/?current=3&page_size=20", nil))
  require.True(t, ok)
  require.Equal(t, 3, current)
  require.Equal(t, 20, pageSize)

  _, _, ok = Paging(httptest.NewRequest(http.MethodGet, "/?current=x", nil))
  require.False(t, ok)
  _, _, ok = Paging(httptest.NewRequest(http.MethodGet, "/?page_size=101", nil))
  require.False(t, ok)
}
