package mediaqueue

// QueueName is the dedicated River queue for media jobs.
const QueueName = "media"

// DeleteJob removes one image from the media host.
type DeleteJob struct {
	PublicID string `json:"public_id"`
	Reason   string `json:"reason,omitempty"`
}

// Kind returns the job type identifier for River
func (DeleteJob) Kind() string { return "media_delete" }

// JobInfo represents a queued media job (for the admin status view).
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	PublicID    string `json:"public_id"`
	State       string `json:"state"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
