package response

import "weeskitten/pkg/pagination"

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Page is the data of a paginated list response.
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Pages int         `json:"pages"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Message wraps a bare confirmation such as a delete result.
func Message(statusCode int, message string) Response {
	return Success(statusCode, map[string]string{"message": message})
}

// Paginated wraps one page of items with its position in the full list.
func Paginated(statusCode int, items interface{}, total int64, p pagination.Params) Response {
	return Success(statusCode, Page{Items: items, Total: total, Page: p.Page, Limit: p.Limit, Pages: p.Pages(total)})
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
