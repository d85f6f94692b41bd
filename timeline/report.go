package timeline

import timelint "github.com/reoring/timelint"

// Report is the outcome of one validation run.
type Report struct {
	// OK is true when no errors were found; warnings do not affect it.
	OK bool
	// Aborted is set when the document could not be loaded, parsed or was
	// not an array. Errors then holds the single document-level issue.
	Aborted bool
	// Count is the number of items in the document.
	Count    int
	Errors   timelint.Issues
	Warnings timelint.Issues
	// Document is the typed content, populated only when OK.
	Document Document
}

// Err returns the errors as an error value, or nil when the run passed.
func (r *Report) Err() error {
	if r.OK || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// Message is the reason an aborted run stopped.
func (r *Report) Message() string {
	if !r.Aborted || len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}
