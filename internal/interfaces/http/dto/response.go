package dto

// Response is the envelope every API endpoint answers with. OK reports
// whether the request succeeded, Message is a human-readable summary,
// Detail carries the payload, Meta carries pagination and Error carries
// machine-readable failure information.
type Response struct {
	OK      bool       `json:"ok"`
	Message string     `json:"message"`
	Detail  any        `json:"detail,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// Meta contains pagination metadata for list responses
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ErrorInfo contains machine-readable error details
type ErrorInfo struct {
	Code      string            `json:"code"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    []ValidationField `json:"fields,omitempty"`
}

// ValidationField describes a single request-binding validation failure
type ValidationField struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success envelope around a payload
func NewSuccessResponse(message string, detail any) Response {
	return Response{
		OK:      true,
		Message: message,
		Detail:  detail,
	}
}

// NewSuccessResponseWithMeta creates a success envelope with pagination meta
func NewSuccessResponseWithMeta(message string, detail any, total int64, page, pageSize int) Response {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Response{
		OK:      true,
		Message: message,
		Detail:  detail,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		OK:      false,
		Message: message,
		Error: &ErrorInfo{
			Code:      code,
			RequestID: requestID,
		},
	}
}

// NewValidationErrorResponse creates an error envelope listing the fields
// that failed request binding
func NewValidationErrorResponse(message, requestID string, fields []ValidationField) Response {
	return Response{
		OK:      false,
		Message: message,
		Error: &ErrorInfo{
			Code:      ErrCodeValidation,
			RequestID: requestID,
			Fields:    fields,
		},
	}
}
