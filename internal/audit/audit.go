// Package audit records security-relevant events. Publishers fire and
// forget; subscribers read from buffered channels and are never allowed to
// block a login or a request.
package audit

import (
	"time"
)

type Action string

const (
	ActionLoginSucceeded  Action = "login.succeeded"
	ActionLoginFailed     Action = "login.failed"
	ActionAccountDisabled Action = "login.account_disabled"
	ActionUserCreated     Action = "user.created"
	ActionUserUpdated     Action = "user.updated"
	ActionUserDeleted     Action = "user.deleted"
)

type Event struct {
	Action    Action    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Recorder interface {
	Record(e Event)
}

// Entry is a convenience constructor stamping the event with the current time.
func Entry(action Action, subject string, detail string) Event {
	return Event{Action: action, Subject: subject, Detail: detail, Timestamp: time.Now().UTC()}
}
