package model

import "time"

// ContactMessage is a message submitted through the public contact form.
// Rows are created by the contact endpoint and are never mutated except
// for toggling the Read flag from the admin inbox.
type ContactMessage struct {
	ID          uint64    // contact_messages.id
	SenderName  string    // contact_messages.sender_name
	SenderEmail string    // contact_messages.sender_email
	Body        string    // contact_messages.body
	Read        bool      // contact_messages.read_flag
	CreatedAt   time.Time // contact_messages.created_at
}
