package output

import (
	"context"
	"net/mail"
)

type Email struct {
	To      []mail.Address
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Email) error
}
