package parsers

const MediaTypeUnresolved = "unknown"

// ResolveMediaTypes looks up every attachments.media_keys entry in the media table and
// stores the ordered types under attachments.media_types.
func ResolveMediaTypes(tweets *Table, media *Table) *Table {
  lookup := map[string]string{}
  if media != nil {
    for _, row := range media.Rows {
      key := row.String("media_key")
      if _, ok := lookup[key]; key == "" || ok {
        continue
      }
      lookup[key] = row.String("type")
    }
  }

  out := NewTable(tweets.Columns...)
  out.AddColumns(ColumnMediaTypes)
  for _, row := range tweets.Rows {
    keys, ok := row.Get(ColumnMediaKeys)
    items, isList := keys.([]interface{})
    if !ok || !isList {
      out.Rows = append(out.Rows, row)
      continue
    }
    types := make([]string, 0, len(items))
    for _, item := range items {
      key, _ := item.(string)
      if kind, ok := lookup[key]; ok && kind != "" {
        types = append(types, kind)
      } else {
        types = append(types, MediaTypeUnresolved)
      }
    }
    resolved := row.clone()
    resolved[ColumnMediaTypes] = types
    out.Rows = append(out.Rows, resolved)
  }
  return out
}
