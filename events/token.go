package events

import "github.com/google/uuid"

// Token identifies a single subscription so it can be removed with [Unsubscribe].
// The zero Token never identifies a subscription.
type Token uuid.UUID

func newToken() Token {
	return Token(uuid.New())
}

// IsZero reports whether t is the zero Token, which is returned when subscribing to an unknown bus.
func (t Token) IsZero() bool {
	return t == Token{}
}

func (t Token) String() string {
	return uuid.UUID(t).String()
}
