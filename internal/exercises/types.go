package exercises

import "time"

// CreateExerciseRequest carries the raw body fields of an exercise
// create. Duration and Date arrive as strings (form values or JSON) and
// are coerced during validation.
type CreateExerciseRequest struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
}

// LogQuery carries the raw query parameters of a log read.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// LogFilter is the resolved filter the repository executes. From is
// inclusive, To is exclusive.
type LogFilter struct {
	Username string
	From     *time.Time
	To       *time.Time
	Limit    *int32
}

// ExerciseResponse is the wire shape of a created exercise. ID carries
// the OWNER's user id, not the exercise's own id; existing clients of
// the original API depend on that.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int32  `json:"duration"`
	Description string `json:"description"`
}

// ExerciseRecord is the wire shape of a stored exercise in the
// unfiltered listing.
type ExerciseRecord struct {
	ID          string `json:"_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int32  `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one row of a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int32  `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the envelope of a log read. Count reflects the rows
// returned after the limit is applied, not the user's total.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
