// Package credentials wires the login and signup forms: email and password
// rules, a confirmation field that follows the live password value, and a
// submission payload that carries a bcrypt hash instead of the password.
package credentials

import (
	"github.com/goliatone/go-formctl/pkg/reactive"
	"github.com/goliatone/go-formctl/pkg/schema"
)

// Field names shared by the credential forms.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldConfirm  = "confirm"
)

// Messages reported by the credential schemas.
const (
	MsgInvalidEmail     = "Invalid email"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordTooLong  = "Password cannot exceed 255 characters"
	MsgPasswordMismatch = "Passwords do not match"
)

// Password length bounds.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 255
)

// EmailSchema validates an email address.
func EmailSchema() *schema.StringSchema {
	return schema.String().Email(MsgInvalidEmail)
}

// PasswordSchema validates password length.
func PasswordSchema() *schema.StringSchema {
	return schema.String().
		Min(PasswordMinLength, MsgPasswordTooShort).
		Max(PasswordMaxLength, MsgPasswordTooLong)
}

// ConfirmSchema requires the value to equal the current password. The schema
// is rebuilt whenever password is written.
func ConfirmSchema(password reactive.Readable[string]) schema.Source[string] {
	if password == nil {
		return schema.Source[string]{}
	}
	return schema.Reactive(func() schema.Schema[string] {
		return schema.String().Equals(password.Get(), MsgPasswordMismatch)
	}, password)
}
