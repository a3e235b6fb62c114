package dto

// EnqueueResponse is returned by the asynchronous seed endpoints.
type EnqueueResponse struct {
	JobID string `json:"jobId"`
}

// JobProgressResponse is the uniform job-status contract. A query for an
// id that was never enqueued yields status "failed" with error "Job not
// found" instead of an HTTP error.
type JobProgressResponse struct {
	JobID    string `json:"jobId"`
	Status   string `json:"status"` // processing | completed | failed
	Progress *int   `json:"progress,omitempty"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}
