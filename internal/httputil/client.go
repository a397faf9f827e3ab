package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds the one-shot workbook fetch; large workbooks from
// shared spreadsheet exports can be slow to generate server-side.
const DefaultTimeout = 60 * time.Second

// NewClient returns the HTTP client used for workbook fetches.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}
