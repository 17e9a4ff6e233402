package parsers

import (
  "strings"
)

const ReferenceSeparator = ";"

// FlattenReferences joins the ids and types of a referenced_tweets list, keeping list order.
func FlattenReferences(value interface{}) (ids string, types string, ok bool) {
  items, isList := value.([]interface{})
  if !isList || len(items) == 0 {
    return
  }
  refIDs := make([]string, 0, len(items))
  refTypes := make([]string, 0, len(items))
  for _, item := range items {
    ref, isMap := item.(map[string]interface{})
    if !isMap {
      return "", "", false
    }
    id, _ := ref["id"].(string)
    kind, _ := ref["type"].(string)
    refIDs = append(refIDs, id)
    refTypes = append(refTypes, kind)
  }
  return strings.Join(refIDs, ReferenceSeparator), strings.Join(refTypes, ReferenceSeparator), true
}

func SplitReferences(value string) []string {
  if value == "" {
    return nil
  }
  return strings.Split(value, ReferenceSeparator)
}
