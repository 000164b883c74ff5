package models

// Response status labels. "success" accompanies 2xx responses, "fail"
// operational 4xx failures, "error" everything else.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// DataResponse is the envelope for single-document responses.
type DataResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ListResponse is the envelope for list responses. Results carries the
// number of documents in Data so clients do not need to count; Total is the
// size of the whole filtered collection across all pages.
type ListResponse struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Total   int64  `json:"total"`
	Data    any    `json:"data"`
}

// ErrorResponse is the envelope for failures. Detail carries the raw error
// text and is only populated in development mode.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// MessageResponse is the envelope for responses that carry only a
// human-readable message (e.g. the forgot-password acknowledgement).
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
