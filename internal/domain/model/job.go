package model

import "time"

// Status of an asynchronous extraction job.
type Status string

const (
	StatusQueued Status = "queued"
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Job is one uploaded document waiting for, or done with, extraction.
type Job struct {
	ID          string    // uuid assigned on submit
	Fingerprint string    // sha256 of the decoded text, used for dedupe
	Filename    string    // original upload name
	BlobKey     string    // where the upload is stored
	Text        string    // decoded text; not persisted once done
	Status      Status    // lifecycle state
	Record      Record    // result when Status is done
	Error       string    // user facing message when Status is failed
	Submitted   time.Time // enqueue time
	Completed   time.Time // zero until done or failed
}

// Finish marks the job done with rec.
func (j *Job) Finish(rec Record, at time.Time) {
	j.Status = StatusDone
	j.Record = rec
	j.Error = ""
	j.Text = ""
	j.Completed = at
}

// Fail marks the job failed with the message of err.
func (j *Job) Fail(err error, at time.Time) {
	j.Status = StatusFailed
	j.Error = ErrorRecord(err)["error"]
	j.Text = ""
	j.Completed = at
}
