package models

// Shape represents a host-drawn shape on the floor plan.
type Shape struct {
	// ID is the stable shape identifier used by bindings.
	ID string `json:"id"`
	// Name is the user-visible shape name, matched against import rows.
	Name string `json:"name"`
	// Type is the geometry kind (rectangle, polygon, oval, circle).
	Type string `json:"type"`
	// Coordinates are image-space coordinates; layout depends on Type.
	Coordinates []float64 `json:"coordinates"`
	// Color is the shape's own fill color, used when no rule matches.
	Color string `json:"color"`
}
