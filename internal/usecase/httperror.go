package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// usecaseに渡す部品（本番はmainで実体を注入、テストは固定値）
type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
