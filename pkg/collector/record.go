package collector

// ProfileRecord is the result of resolving one handle. It is created once
// per resolution attempt, for failures as much as for successes, and is
// immutable afterward.
type ProfileRecord struct {
	Username    string
	FullName    string
	Bio         string
	ExternalURL string

	// IsPrivate is nil when the fetch failed and the flag is unknown.
	IsPrivate *bool

	// Emails is the deduplicated, sorted union of bio and crawled emails.
	Emails []string

	// EmailSources are the followed links that contributed emails.
	EmailSources []string

	// Error is set only when resolution failed; Emails is then empty and
	// IsPrivate unknown.
	Error string
}

// EmailsCount returns the number of emails found for this profile.
func (r *ProfileRecord) EmailsCount() int {
	return len(r.Emails)
}

// Failed reports whether this record represents a failed resolution.
func (r *ProfileRecord) Failed() bool {
	return r.Error != ""
}

// ErrorRecord builds the failure-shaped record for a handle: error message
// set, email set empty, privacy unknown.
func ErrorRecord(handle string, err error) *ProfileRecord {
	msg := "resolution failed"
	if err != nil {
		msg = err.Error()
	}
	return &ProfileRecord{
		Username:     handle,
		Emails:       []string{},
		EmailSources: []string{},
		Error:        msg,
	}
}

// BatchRun aggregates the records and counters of one batch operation.
// Records keep input order.
type BatchRun struct {
	Records []*ProfileRecord

	Processed   int
	EmailsFound int
	Errors      int
	Private     int
}

// add appends a record and updates the run counters.
func (b *BatchRun) add(rec *ProfileRecord) {
	b.Records = append(b.Records, rec)
	b.Processed++
	b.EmailsFound += rec.EmailsCount()
	if rec.Failed() {
		b.Errors++
	}
	if rec.IsPrivate != nil && *rec.IsPrivate {
		b.Private++
	}
}

// SuccessRate returns the fraction of records that resolved without error,
// in percent.
func (b *BatchRun) SuccessRate() float64 {
	if b.Processed == 0 {
		return 0
	}
	return float64(b.Processed-b.Errors) / float64(b.Processed) * 100
}
