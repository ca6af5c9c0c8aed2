package dto

// Response is the envelope every endpoint writes
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo carries the error code and where it happened
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Details   map[string]any     `json:"details,omitempty"`
	Fields    []ValidationDetail `json:"fields,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	TraceID   string             `json:"trace_id,omitempty"`
}

// ValidationDetail names one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the page a list response holds
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// OK wraps data in a success envelope
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Page wraps one page of a list with its pagination meta
func Page(data any, total int64, page, pageSize int) Response {
	meta := &Meta{Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		meta.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Response{Success: true, Data: data, Meta: meta}
}

// Fail builds an error envelope
func Fail(code, message string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message}}
}

// WithRequest tags the error with the request and trace IDs
func (r Response) WithRequest(requestID, traceID string) Response {
	if r.Error != nil {
		r.Error.RequestID, r.Error.TraceID = requestID, traceID
	}
	return r
}

// WithDetails attaches structured error details
func (r Response) WithDetails(details map[string]any) Response {
	if r.Error != nil {
		r.Error.Details = details
	}
	return r
}

// WithFields attaches the rejected request fields
func (r Response) WithFields(fields []ValidationDetail) Response {
	if r.Error != nil {
		r.Error.Fields = fields
	}
	return r
}
