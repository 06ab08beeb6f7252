package model

// PageSize is the fixed number of users per listing page.
const PageSize = 5

// Page is a view over one slice of a collection. It is built fresh on
// every list request and never persisted.
type Page[T any] struct {
	Items      []T  `json:"items"`
	TotalPages int  `json:"totalPages"`
	First      bool `json:"first"`
	Last       bool `json:"last"`
	Number     int  `json:"number"`
	Size       int  `json:"size"`
}
