package entity

// Pagination mirrors the envelope returned by paginated list endpoints.
type Pagination struct {
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginated is the envelope shape {success, data, pagination}. Not every list
// endpoint uses it; some return a bare array. The two shapes are not
// interchangeable and each gateway method decodes the one its endpoint emits.
type Paginated[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
