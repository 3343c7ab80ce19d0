package models

import "time"

// Entry is a single item in a checklist-style collection (night routine, todo).
// CompletedAt is non-nil exactly when the entry is done.
type Entry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CompletedAt *time.Time `json:"completedAt"`
	DueDate     string     `json:"dueDate,omitempty"` // YYYY-MM-DD format
	CreatedAt   time.Time  `json:"createdAt"`
}

// Done reports whether the entry is marked complete.
func (e Entry) Done() bool {
	return e.CompletedAt != nil
}

// DiaryMap holds one line of text per calendar day, keyed by YYYY-MM-DD.
type DiaryMap map[string]string

// PackingItem is a single thing to pack.
type PackingItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// PackingCategory groups packing items. Items never outlive their category.
type PackingCategory struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []PackingItem `json:"items"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Number      int      `json:"number" yaml:"number"`
	Question    string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	AnswerIndex int      `json:"answer_index" yaml:"answer_index"`
}
