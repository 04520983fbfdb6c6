package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/schema"
)

// Renderer presents a form. Static renderers (HTML hints) serialize the
// current state; interactive renderers drive the inputs until the user
// submits and return the serialized submission.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *Form, options RenderOptions) ([]byte, error)
}

// Kind tells renderers how to collect a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
)

// ParseKind maps a declared field type to a Kind, defaulting to text.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindEmail:
		return KindEmail
	case KindPassword:
		return KindPassword
	default:
		return KindText
	}
}

// Input is the event target of a bound field; binding.Directive satisfies it.
type Input interface {
	Handle(ev binding.Event, el binding.Element) (schema.Issues, error)
}

// Prompt is one interactive field of a Form.
type Prompt struct {
	Field form.Field
	Input Input
	Label string
	Kind  Kind
	Help  string
}

// Name returns the underlying field name.
func (p Prompt) Name() string {
	if p.Field == nil {
		return ""
	}
	return p.Field.Name()
}

// Title returns the label, falling back to the field name.
func (p Prompt) Title() string {
	if label := strings.TrimSpace(p.Label); label != "" {
		return label
	}
	return p.Name()
}

// SubmitFunc turns a valid form into the payload renderers serialize.
type SubmitFunc func(ctx context.Context) (any, error)

// Form pairs a group with the bound inputs renderers drive.
type Form struct {
	Group   *form.Group
	Prompts []Prompt
	// Submit defaults to Group.Submit, which yields the raw values.
	Submit SubmitFunc
}

// NewForm validates that every prompt belongs to group.
func NewForm(group *form.Group, submit SubmitFunc, prompts ...Prompt) (*Form, error) {
	if group == nil {
		return nil, fmt.Errorf("render: form group is required")
	}
	for _, prompt := range prompts {
		if prompt.Field == nil || prompt.Input == nil {
			return nil, fmt.Errorf("render: prompt %q needs a field and an input", prompt.Label)
		}
		if _, ok := group.Get(prompt.Name()); !ok {
			return nil, fmt.Errorf("render: prompt %q is not part of form %q", prompt.Name(), group.ID())
		}
	}
	return &Form{Group: group, Prompts: prompts, Submit: submit}, nil
}

// Finish runs the submit hook.
func (f *Form) Finish(ctx context.Context) (any, error) {
	if f.Submit != nil {
		return f.Submit(ctx)
	}
	return f.Group.Submit(ctx)
}
