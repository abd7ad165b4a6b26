// Package models holds the persistent record types of the catalog service.
package models

// Cereal is a single breakfast-cereal product record. ID is assigned by the
// store; Name is unique across the catalog.
type Cereal struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Mfr      string  `json:"mfr"`
	Type     string  `json:"type"`
	Calories int     `json:"calories"`
	Protein  int     `json:"protein"`
	Fat      int     `json:"fat"`
	Sodium   int     `json:"sodium"`
	Fiber    float64 `json:"fiber"`
	Carbo    float64 `json:"carbo"`
	Sugars   int     `json:"sugars"`
	Potass   int     `json:"potass"`
	Vitamins int     `json:"vitamins"`
	Shelf    int     `json:"shelf"`
	Weight   float64 `json:"weight"`
	Cups     float64 `json:"cups"`
	Rating   float64 `json:"rating"`
}
