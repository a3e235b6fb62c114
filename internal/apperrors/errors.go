package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfig indicates a missing or invalid configuration value (credential, URL)
// discovered at call time. Not retryable.
var ErrConfig = errors.New("configuration error")

// ErrUpstreamAuth indicates the reference API rejected our credential. Not retryable.
var ErrUpstreamAuth = errors.New("upstream authentication failed")

// ErrUpstreamNotFound indicates the reference API endpoint does not exist,
// usually a misconfigured base URL. Not retryable.
var ErrUpstreamNotFound = errors.New("upstream endpoint not found")

// ErrTransient indicates a network failure or upstream 5xx. Retryable by the caller.
var ErrTransient = errors.New("transient upstream error")

// ErrRateLimited indicates the reference API asked us to back off.
var ErrRateLimited = errors.New("upstream rate limit exceeded")

// ErrParse indicates a malformed numeric or date field in upstream data.
// Callers catch this per entry and skip the entry.
var ErrParse = errors.New("parse error")
