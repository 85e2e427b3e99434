package model

import (
	"net/mail"
	"strings"
)

// MaxPasswordBytes is bcrypt's input limit. Longer passwords would be
// silently truncated by bcrypt, so they are rejected up front.
const MaxPasswordBytes = 72

// Validation messages. Clients match on these strings, so they are part of
// the API contract.
const (
	MsgFirstNameRequired   = "First name is required"
	MsgFirstNameEmpty      = "Please provide a first name"
	MsgLastNameRequired    = "Last name is required"
	MsgLastNameEmpty       = "Please provide a last name"
	MsgEmailRequired       = "Email address is required"
	MsgEmailInvalid        = "Please provide a valid email address"
	MsgEmailInUse          = "Email address already in use"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordEmpty       = "Please provide a password"
	MsgPasswordTooLong     = "Password must be 72 bytes or fewer"
	MsgTitleRequired       = "Title is required"
	MsgTitleEmpty          = "Please provide a title"
	MsgDescriptionRequired = "Description is required"
	MsgDescriptionEmpty    = "Please provide a description"
)

// Validate checks a new user and returns every violated rule in field order.
// A nil result means the input is valid.
func (in UserInput) Validate() []string {
	var msgs []string

	msgs = requireText(msgs, in.FirstName, MsgFirstNameRequired, MsgFirstNameEmpty)
	msgs = requireText(msgs, in.LastName, MsgLastNameRequired, MsgLastNameEmpty)

	switch {
	case !in.EmailAddress.Valid:
		msgs = append(msgs, MsgEmailRequired)
	case !ValidEmail(in.EmailAddress.Value):
		msgs = append(msgs, MsgEmailInvalid)
	}

	switch {
	case !in.Password.Valid:
		msgs = append(msgs, MsgPasswordRequired)
	case in.Password.Blank():
		msgs = append(msgs, MsgPasswordEmpty)
	case len(in.Password.Value) > MaxPasswordBytes:
		msgs = append(msgs, MsgPasswordTooLong)
	}

	return msgs
}

// ValidateCreate checks a new course. Title and description are mandatory;
// the two optional fields accept anything.
func (in CourseInput) ValidateCreate() []string {
	var msgs []string
	msgs = requireText(msgs, in.Title, MsgTitleRequired, MsgTitleEmpty)
	msgs = requireText(msgs, in.Description, MsgDescriptionRequired, MsgDescriptionEmpty)
	return msgs
}

// ValidateUpdate checks only the fields present in a partial update.
// Absent fields stay as they are; an explicit null on a required field is
// reported the same way as a missing one on create.
func (in CourseInput) ValidateUpdate() []string {
	var msgs []string
	if in.Title.Set {
		msgs = requireText(msgs, in.Title, MsgTitleRequired, MsgTitleEmpty)
	}
	if in.Description.Set {
		msgs = requireText(msgs, in.Description, MsgDescriptionRequired, MsgDescriptionEmpty)
	}
	return msgs
}

func requireText(msgs []string, t Text, required, empty string) []string {
	switch {
	case !t.Valid:
		return append(msgs, required)
	case t.Blank():
		return append(msgs, empty)
	}
	return msgs
}

// ValidEmail reports whether s is a bare address like "jane@example.com".
// Display-name forms ("Jane <jane@example.com>") and hosts without a dot
// are rejected.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
