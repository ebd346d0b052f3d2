package cms

import "encoding/json"

// Page is the paginated envelope returned by every collection endpoint.
type Page[T any] struct {
	Docs          []T  `json:"docs"`
	TotalDocs     int  `json:"totalDocs"`
	Limit         int  `json:"limit"`
	TotalPages    int  `json:"totalPages"`
	Page          int  `json:"page"`
	PagingCounter int  `json:"pagingCounter"`
	HasPrevPage   bool `json:"hasPrevPage"`
	HasNextPage   bool `json:"hasNextPage"`
	PrevPage      *int `json:"prevPage"`
	NextPage      *int `json:"nextPage"`
}

// Where is a CMS query filter: field → operator → value.
type Where map[string]map[string]any

// Equals builds a single "field equals value" filter.
func Equals(field string, value any) Where {
	return Where{field: {"equals": value}}
}

// And adds another condition and returns the same filter.
func (w Where) And(field, operator string, value any) Where {
	if w[field] == nil {
		w[field] = map[string]any{}
	}
	w[field][operator] = value
	return w
}

// Encode serializes the filter as the JSON value of the "where" parameter.
func (w Where) Encode() (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
