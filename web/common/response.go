package common

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

type SuccessResponse struct {
	Data any `json:"data"`
}

func NewSuccessResponse(data any) *SuccessResponse {
	return &SuccessResponse{Data: data}
}

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchResponse wraps a full listing. Nothing is paged server side, so the
// total is the length of data.
type SearchResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewSearchResponse[T any](data []T) *SearchResponse {
	if data == nil {
		data = []T{}
	}
	return &SearchResponse{
		Data:       data,
		Pagination: Pagination{Total: int64(len(data))},
	}
}
