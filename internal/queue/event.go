// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// ContactReceivedEvent is published after a contact-form message has
// been persisted.  It carries enough information for the notification
// consumer to alert the site owner without querying the database.
type ContactReceivedEvent struct {
	MessageID   uint64    `json:"message_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Body        string    `json:"body"`
	ReceivedAt  time.Time `json:"received_at"`
}
