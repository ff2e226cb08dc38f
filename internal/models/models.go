package models

// Job is a posted opening. Ids are millisecond timestamps assigned at
// creation time; the JSON tags match the on-disk jobs.json shape.
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Openings    int    `json:"openings"`
	Experience  int    `json:"experience"`
	PostedAt    int64  `json:"postedAt"`
}

// Application is a candidate submission against a Job. JobID is a soft
// reference: it may dangle if the job is deleted outside the cascade.
// Resume is the web path of the uploaded file under /uploads, or null.
type Application struct {
	ID        int64   `json:"id"`
	JobID     int64   `json:"jobId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Cover     string  `json:"cover"`
	Resume    *string `json:"resume"`
	AppliedAt int64   `json:"appliedAt"`
}

// MailLogEntry is one line of email-log.jsonl.
type MailLogEntry struct {
	Timestamp string `json:"ts"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Sent      bool   `json:"sent"`
	Note      string `json:"note"`
}
