package credentials

import (
	"context"

	"github.com/goliatone/go-formctl/pkg/render"
)

// View exposes the login form to renderers. Submitting yields a Submission.
func (l *Login) View(opts ...HashOption) (*render.Form, error) {
	return render.NewForm(l.Form,
		func(ctx context.Context) (any, error) { return l.Submit(ctx, opts...) },
		render.Prompt{Field: l.Email, Input: l.EmailInput, Label: "Email", Kind: render.KindEmail},
		render.Prompt{Field: l.Password, Input: l.PasswordInput, Label: "Password", Kind: render.KindPassword},
	)
}

// View exposes the signup form to renderers.
func (s *Signup) View(opts ...HashOption) (*render.Form, error) {
	return render.NewForm(s.Form,
		func(ctx context.Context) (any, error) { return s.Submit(ctx, opts...) },
		render.Prompt{Field: s.Email, Input: s.EmailInput, Label: "Email", Kind: render.KindEmail},
		render.Prompt{Field: s.Password, Input: s.PasswordInput, Label: "Password", Kind: render.KindPassword, Help: "At least 8 characters"},
		render.Prompt{Field: s.Confirm, Input: s.ConfirmInput, Label: "Confirm password", Kind: render.KindPassword},
	)
}
