package models

// OutcomeStatus classifies the result of processing one inbound message.
type OutcomeStatus string

const (
	// OutcomeProcessed means the submission was persisted and archived.
	OutcomeProcessed OutcomeStatus = "processed"
	// OutcomeDuplicate means the submission number already existed.
	OutcomeDuplicate OutcomeStatus = "duplicate"
	// OutcomeError means processing failed before persisting.
	OutcomeError OutcomeStatus = "error"
)

// Outcome records how one inbound message was handled. It selects the
// notification template and the label applied to the source message.
type Outcome struct {
	Status      OutcomeStatus `json:"status"`
	MessageID   string        `json:"message_id"`
	Number      string        `json:"number,omitempty"`
	RowsWritten int           `json:"rows_written,omitempty"`
	FileName    string        `json:"file_name,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Summary aggregates outcome counts for one pipeline run.
type Summary struct {
	Processed  int `json:"processed"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Total returns the number of messages handled in the run.
func (s Summary) Total() int {
	return s.Processed + s.Duplicates + s.Errors
}
