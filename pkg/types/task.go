package types

import "strings"

// Task column names. Task shares FieldID and FieldDateAdded with Contact.
const (
	FieldText      = "text"
	FieldCompleted = "completed"
)

// TaskSearchFields are the columns task search matches.
var TaskSearchFields = []string{FieldText}

// Task is a to-do item. Text is required; Completed starts false.
type Task struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DateAdded string `json:"date_added"`
}

var _ Record[Task] = Task{}

func (t Task) RecordID() int { return t.ID }

func (t Task) Added() string { return t.DateAdded }

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return &ValidationError{Kind: KindTask, Field: FieldText}
	}
	return nil
}

func (t Task) Normalize() Task {
	t.Text = strings.TrimSpace(t.Text)
	return t
}

func (t Task) WithIdentity(id int, dateAdded string) Task {
	t.ID = id
	t.DateAdded = dateAdded
	return t
}

func (t Task) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return Int(t.ID), true
	case FieldText:
		return String(t.Text), true
	case FieldCompleted:
		return Bool(t.Completed), true
	case FieldDateAdded:
		return String(t.DateAdded), true
	}
	return Value{}, false
}

// Status returns the glyph shown in the status column.
func (t Task) Status() string {
	if t.Completed {
		return "✓"
	}
	return "○"
}
