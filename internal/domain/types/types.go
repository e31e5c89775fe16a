// Package types contains the JSON shapes shared by the HTTP API and the CLI.
package types

import (
	"time"

	"github.com/okian/cvparse/internal/domain/model"
)

// JobView is the public view of an extraction job.
type JobView struct {
	ID        string        `json:"id"`
	Status    model.Status  `json:"status"`
	Filename  string        `json:"filename,omitempty"`
	Record    *model.Record `json:"record,omitempty"`
	Error     string        `json:"error,omitempty"`
	Submitted time.Time     `json:"submitted"`
	Completed *time.Time    `json:"completed,omitempty"`
}

// NewJobView builds the view of j. The record is only shown once the job is
// done.
func NewJobView(j model.Job) JobView {
	v := JobView{
		ID:        j.ID,
		Status:    j.Status,
		Filename:  j.Filename,
		Error:     j.Error,
		Submitted: j.Submitted,
	}
	if j.Status == model.StatusDone {
		rec := j.Record
		v.Record = &rec
	}
	if !j.Completed.IsZero() {
		at := j.Completed
		v.Completed = &at
	}
	return v
}

// Submission is returned when a document is accepted for asynchronous
// extraction. Duplicate is set when the same content was submitted before;
// ID then names the earlier job.
type Submission struct {
	ID        string       `json:"id"`
	Status    model.Status `json:"status"`
	Duplicate bool         `json:"duplicate,omitempty"`
}

// ReportEntry is one file of a batch run: either a record or an error.
type ReportEntry struct {
	File     string        `json:"file"`
	Record   *model.Record `json:"record,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration string        `json:"duration"`
}
