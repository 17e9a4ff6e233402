package parsers

import (
  "errors"
  "fmt"
  "math"

  "github.com/paulmach/orb"
  "github.com/paulmach/orb/geo"
  "github.com/paulmach/orb/planar"
)

var (
  ErrMalformedBbox  = errors.New("bbox must hold exactly 4 numbers")
  ErrMalformedPoint = errors.New("point must hold exactly 2 numbers")
)

// MaxBboxSide is the longest side, in metres, the search API accepts for bounding_box queries.
const MaxBboxSide = 40000.0

type BoundingBox struct {
  West  float64 `json:"left"`
  South float64 `json:"bottom"`
  East  float64 `json:"right"`
  North float64 `json:"top"`
}

func (b BoundingBox) Validate() error {
  if b.West < -180 || b.East > 180 || b.South < -90 || b.North > 90 {
    return fmt.Errorf("bbox %v outside WGS-84 range", b)
  }
  if b.West >= b.East || b.South >= b.North {
    return fmt.Errorf("bbox %v has no extent", b)
  }
  width := geo.Distance(orb.Point{b.West, b.South}, orb.Point{b.East, b.South})
  height := geo.Distance(orb.Point{b.West, b.South}, orb.Point{b.West, b.North})
  if width > MaxBboxSide || height > MaxBboxSide {
    return fmt.Errorf("bbox %v exceeds %.0f m per side (%.0f x %.0f)", b, MaxBboxSide, width, height)
  }
  return nil
}

func (b BoundingBox) Query() string {
  return fmt.Sprintf("bounding_box:[%.5f %.5f %.5f %.5f]", b.West, b.South, b.East, b.North)
}

// ParsePoint reads a [x, y] coordinate pair.
func ParsePoint(value interface{}) (orb.Point, error) {
  items, ok := value.([]interface{})
  if !ok || len(items) != 2 {
    return orb.Point{}, ErrMalformedPoint
  }
  x, okX := items[0].(float64)
  y, okY := items[1].(float64)
  if !okX || !okY {
    return orb.Point{}, ErrMalformedPoint
  }
  return orb.Point{x, y}, nil
}

// BboxCentroid returns the planar centroid of a place bounding box given as [E, S, W, N],
// read as the corners SE, NE, NW, SW.
func BboxCentroid(bbox []float64) (orb.Point, error) {
  if len(bbox) != 4 {
    return orb.Point{}, ErrMalformedBbox
  }
  for _, v := range bbox {
    if math.IsNaN(v) || math.IsInf(v, 0) {
      return orb.Point{}, ErrMalformedBbox
    }
  }
  se := orb.Point{bbox[0], bbox[1]}
  ne := orb.Point{bbox[0], bbox[3]}
  nw := orb.Point{bbox[2], bbox[3]}
  sw := orb.Point{bbox[2], bbox[1]}
  polygon := orb.Polygon{orb.Ring{se, ne, nw, sw, se}}

  centroid, area := planar.CentroidArea(polygon)
  if area == 0 {
    // point-like places have no area
    return orb.Point{(bbox[0] + bbox[2]) / 2, (bbox[1] + bbox[3]) / 2}, nil
  }
  return centroid, nil
}

func toFloats(value interface{}) ([]float64, bool) {
  items, ok := value.([]interface{})
  if !ok {
    return nil, false
  }
  out := make([]float64, len(items))
  for i, item := range items {
    f, ok := item.(float64)
    if !ok {
      return nil, false
    }
    out[i] = f
  }
  return out, true
}
