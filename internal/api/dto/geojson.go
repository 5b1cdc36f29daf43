package dto

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// MapView is what the map renderer draws: a path plus one marker per stop.
type MapView struct {
	Center  [2]float64        `json:"center"`
	Zoom    int               `json:"zoom"`
	GeoJSON FeatureCollection `json:"geojson"`
}
