package guardrails

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const defaultMaxLength = 2000

var (
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrMessageTooLong = errors.New("message is too long")
)

// Guardrails performs simple input validation.
type Guardrails struct {
	maxLength int
}

// New returns guardrails limiting messages to maxLength characters.
func New(maxLength int) *Guardrails {
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	return &Guardrails{maxLength: maxLength}
}

// CheckInput returns an error if input is blank or exceeds the length limit.
func (g *Guardrails) CheckInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return ErrEmptyMessage
	}
	if utf8.RuneCountInString(input) > g.maxLength {
		return ErrMessageTooLong
	}
	return nil
}
