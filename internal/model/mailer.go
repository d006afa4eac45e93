package model

import "context"

// Mailer delivers outbound notifications. Account provisioning stages its
// database writes first and commits only after Send returns nil.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
