package credentials

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/form"
)

// Form ids.
const (
	LoginFormID  = "login"
	SignupFormID = "signup"
)

// Login is the email/password form.
type Login struct {
	Form          *form.Group
	Email         *control.Control[string]
	Password      *control.Control[string]
	EmailInput    *binding.Directive[string]
	PasswordInput *binding.Directive[string]
}

// NewLogin builds the login form with bound inputs.
func NewLogin() (*Login, error) {
	email := control.New("", control.WithName[string](FieldEmail), control.WithSchema[string](EmailSchema()))
	password := control.New("", control.WithName[string](FieldPassword), control.WithSchema[string](PasswordSchema()))

	group, err := form.NewGroup(LoginFormID, email, password)
	if err != nil {
		return nil, fmt.Errorf("credentials: login form: %w", err)
	}
	return &Login{
		Form:          group,
		Email:         email,
		Password:      password,
		EmailInput:    binding.BindString(email),
		PasswordInput: binding.BindString(password),
	}, nil
}

// Submit validates the form and returns the hashed payload.
func (l *Login) Submit(ctx context.Context, opts ...HashOption) (Submission, error) {
	if _, err := l.Form.Submit(ctx); err != nil {
		return Submission{}, err
	}
	return newSubmission(l.Email.Value.Get(), l.Password.Value.Get(), opts...)
}

// Signup adds a confirmation field to the login fields.
type Signup struct {
	Form          *form.Group
	Email         *control.Control[string]
	Password      *control.Control[string]
	Confirm       *control.Control[string]
	EmailInput    *binding.Directive[string]
	PasswordInput *binding.Directive[string]
	ConfirmInput  *binding.Directive[string]
}

// NewSignup builds the signup form. Editing the password re-validates the
// confirmation, and the password directive reports the confirmation's issues
// after its own.
func NewSignup() (*Signup, error) {
	email := control.New("", control.WithName[string](FieldEmail), control.WithSchema[string](EmailSchema()))
	password := control.New("", control.WithName[string](FieldPassword), control.WithSchema[string](PasswordSchema()))
	confirm := control.New("", control.WithName[string](FieldConfirm), control.WithSource(ConfirmSchema(password.Value)))

	group, err := form.NewGroup(SignupFormID, email, password, confirm)
	if err != nil {
		return nil, fmt.Errorf("credentials: signup form: %w", err)
	}
	return &Signup{
		Form:          group,
		Email:         email,
		Password:      password,
		Confirm:       confirm,
		EmailInput:    binding.BindString(email),
		PasswordInput: binding.BindString(password, binding.WithDependents[string](confirm)),
		ConfirmInput:  binding.BindString(confirm),
	}, nil
}

// Submit validates the form and returns the hashed payload.
func (s *Signup) Submit(ctx context.Context, opts ...HashOption) (Submission, error) {
	if _, err := s.Form.Submit(ctx); err != nil {
		return Submission{}, err
	}
	return newSubmission(s.Email.Value.Get(), s.Password.Value.Get(), opts...)
}
