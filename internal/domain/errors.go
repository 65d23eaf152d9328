package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMessage is returned when an insert hits the unique index on
	// email_message_id, i.e. the notification was already ingested.
	ErrDuplicateMessage = errors.New("message already processed")
)
