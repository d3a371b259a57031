package schema

// Envelope is the shape of every single-item or collection response of the remote service.
type Envelope[T any] struct {
	Status  bool    `json:"status"`
	Data    *T      `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
}
