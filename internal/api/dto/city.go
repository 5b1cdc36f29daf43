package dto

type CityResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListCitiesResponse struct {
	DefaultStart string         `json:"default_start"`
	Cities       []CityResponse `json:"cities"`
}
