package apierr

import "fmt"

// Error carries the HTTP status a failure should map to. Validation errors
// keep their message (it names the violated constraint); anything without an
// explicit status is treated as an upstream failure and hidden behind a
// generic message at the HTTP boundary.
type Error struct {
  Status int
  Code   string
  Err    error
}

func (e *Error) Error() string {
  if e == nil {
    return ""
  }
  if e.Err != nil {
    return e.Err.Error()
  }
  if e.Code != "" {
    return e.Code
  }
  if e.Status != 0 {
    return fmt.Sprintf("api error (%d)", e.Status)
  }
  return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
  return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(format string, args ...any) *Error {
  return New(400, "invalid_request", fmt.Errorf(format, args...))
}

func NotFound(code string, format string, args ...any) *Error {
  return New(404, code, fmt.Errorf(format, args...))
}
