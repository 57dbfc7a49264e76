package model

// Place is a point of interest returned by a places search.
type Place struct {
	PlaceID          string   `json:"place_id,omitempty"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	Types            []string `json:"types,omitempty"`
	Geometry         Geometry `json:"geometry"`
	Photos           []Photo  `json:"photos,omitempty"`
	Selected         bool     `json:"selected,omitempty"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
