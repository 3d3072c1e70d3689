package dto

type CityResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type ListCityResponse struct {
	Cities []CityResponse `json:"cities"`
}
