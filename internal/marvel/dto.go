package marvel

// APIResponse is the envelope wrapping every Marvel API response
type APIResponse struct {
	Code   int           `json:"code"`
	Status string        `json:"status"`
	Data   DataContainer `json:"data"`
}

// DataContainer holds a page of results
type DataContainer struct {
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Results []Character `json:"results"`
}

// Character is a character resource as returned by /characters
type Character struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Thumbnail   Image        `json:"thumbnail"`
	Comics      ResourceList `json:"comics"`
	Series      ResourceList `json:"series"`
	Stories     ResourceList `json:"stories"`
}

// Image is a thumbnail reference
type Image struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

// ResourceList summarizes a related collection; only the count is used
type ResourceList struct {
	Available int `json:"available"`
}

// ErrorResponse is the body returned alongside non-200 statuses
type ErrorResponse struct {
	Code    any    `json:"code"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
