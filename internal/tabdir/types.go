package tabdir

import "fmt"

const (
	CodeValidation  = "VALIDATION"
	CodeTabNotFound = "TAB_NOT_FOUND"
	CodeHostQuery   = "HOST_QUERY"
	CodeHostAction  = "HOST_ACTION"
)

// CodedError is a typed error used for stable API mapping.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

func newError(code, msg string, cause error) error {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// Tab describes one open browser tab as tracked by the directory.
type Tab struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	FaviconURL string `json:"favicon_url,omitempty"`
	WindowID   int    `json:"window_id"`
	Active     bool   `json:"active"`
	Pinned     bool   `json:"pinned"`
}
