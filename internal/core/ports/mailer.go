package ports

import "context"

// Mailer delivers plaintext notification emails out of band.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
