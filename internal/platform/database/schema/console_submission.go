package schema

// ConsoleSubmissionTable represents the 'console.submission' table
type ConsoleSubmissionTable struct {
	Table       string
	ID          string
	SessionID   string
	Email       string
	DraftID     string
	Locale      string
	ChapterID   string
	AuthorID    string
	VerseNumber string
	Hierarchy   string
	Status      string
	UpstreamID  string
	Message     string
	Payload     string
	CreatedAt   string
}

// ConsoleSubmission is the schema definition for console.submission
var ConsoleSubmission = ConsoleSubmissionTable{
	Table:       "console.submission",
	ID:          "id",
	SessionID:   "sessionid",
	Email:       "email",
	DraftID:     "draftid",
	Locale:      "locale",
	ChapterID:   "chapterid",
	AuthorID:    "authorid",
	VerseNumber: "versenumber",
	Hierarchy:   "hierarchy",
	Status:      "status",
	UpstreamID:  "upstreamid",
	Message:     "message",
	Payload:     "payload",
	CreatedAt:   "createdat",
}

func (t ConsoleSubmissionTable) Columns() []string {
	return []string{
		t.ID, t.SessionID, t.Email, t.DraftID, t.Locale, t.ChapterID, t.AuthorID,
		t.VerseNumber, t.Hierarchy, t.Status, t.UpstreamID, t.Message, t.Payload, t.CreatedAt,
	}
}
