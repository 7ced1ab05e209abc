package session

import "time"

// Statistics summarizes a session.
type Statistics struct {
	Errors int         `json:"errors"`
	Speed  TypingSpeed `json:"typing_speed"`
}

// Record is an immutable snapshot of a finished (or abandoned) session.
type Record struct {
	Timestamp time.Time  `json:"timestamp"`
	Stats     Statistics `json:"stats"`
}
