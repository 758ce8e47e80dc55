package gcalendar

import "time"

// DefaultCalendarID is used when a request leaves CalendarID empty.
const DefaultCalendarID = "primary"

// TaskIDProperty is the private extended property carrying the id of the task an event
// was created for.
const TaskIDProperty = "smartTodoTaskId"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	TaskID      string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // IANA name, e.g. "Asia/Shanghai"
	// ReminderMinutes adds a popup reminder this many minutes before the start. Zero keeps
	// the calendar's default reminders.
	ReminderMinutes int64
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID        string
	TaskID    string
	Summary   string
	HtmlLink  string
	StartTime time.Time
	EndTime   time.Time
}
