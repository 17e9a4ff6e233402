package exporters

import (
  "io"

  "github.com/paulmach/orb"
  "github.com/paulmach/orb/geojson"

  "scraper.local/geotweets/parsers"
)

const CRS = "urn:ogc:def:crs:EPSG::4326"

// GeoJSONExporter writes one point feature per located tweet, in WGS-84.
type GeoJSONExporter struct {
  Columns []string
}

func (e *GeoJSONExporter) Extension() string {
  return "geojson"
}

func (e *GeoJSONExporter) Export(w io.Writer, table *parsers.Table) error {
  buf, err := e.FeatureCollection(table).MarshalJSON()
  if err != nil {
    return err
  }
  _, err = w.Write(buf)
  return err
}

func (e *GeoJSONExporter) FeatureCollection(table *parsers.Table) *geojson.FeatureCollection {
  columns := e.Columns
  if len(columns) == 0 {
    columns = parsers.GeoExportColumns
  }
  located := parsers.LocateRows(table).Select(columns)

  fc := geojson.NewFeatureCollection()
  fc.ExtraMembers = geojson.Properties{
    "crs": map[string]interface{}{
      "type":       "name",
      "properties": map[string]interface{}{"name": CRS},
    },
  }
  for _, row := range located.Rows {
    x, _ := row.Float(parsers.ColumnX)
    y, _ := row.Float(parsers.ColumnY)
    feature := geojson.NewFeature(orb.Point{x, y})
    feature.ID = row.String(parsers.ColumnID)
    for column, value := range row {
      feature.Properties[column] = value
    }
    fc.Append(feature)
  }
  return fc
}
