package models

import (
	"fmt"
	"math"
)

// Point is a position on the simulation plane. Coordinates are abstract
// distance units, not geographic degrees.
type Point struct {
	X float64 `json:"x" parquet:"name=x,type=DOUBLE"`
	Y float64 `json:"y" parquet:"name=y,type=DOUBLE"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("%g %g", p.X, p.Y)
}

func (p *Point) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		_, err := fmt.Sscanf(string(v), "POINT(%f %f)", &p.X, &p.Y)
		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT(%f %f)", &p.X, &p.Y)
		return err
	default:
		return fmt.Errorf("unsupported type for Point: %T", value)
	}
}
