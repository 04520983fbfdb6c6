package bubble

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formctl/pkg/binding"
	"github.com/goliatone/go-formctl/pkg/form"
	"github.com/goliatone/go-formctl/pkg/render"
	"github.com/goliatone/go-formctl/pkg/schema"
)

const invalidStatus = "Please fix the highlighted fields."

// Model is the bubbletea model for a form. Key events become directive
// events: typing is input, tab and shift+tab blur the current field and
// focus the next one, enter attempts a submission.
type Model struct {
	ctx    context.Context
	form   *render.Form
	opts   render.RenderOptions
	styles Styles
	title  string

	inputs []textinput.Model
	focus  int

	status  string
	result  any
	err     error
	done    bool
	aborted bool
}

// NewModel builds a model over f and focuses its first enabled field.
func NewModel(ctx context.Context, f *render.Form, opts render.RenderOptions, styles Styles) *Model {
	m := &Model{
		ctx:    ctx,
		form:   f,
		opts:   opts,
		styles: styles,
		title:  f.Group.ID(),
		inputs: make([]textinput.Model, len(f.Prompts)),
		focus:  -1,
	}
	for i, prompt := range f.Prompts {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 255
		ti.Width = 40
		ti.Placeholder = prompt.Help
		if prompt.Kind == render.KindPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if current, ok := prompt.Field.Raw().(string); ok {
			ti.SetValue(current)
		}
		m.inputs[i] = ti
	}
	if next := m.nextEnabled(-1, 1); next >= 0 {
		m.focusField(next)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "tab", "down":
		return m, m.move(1)
	case "shift+tab", "up":
		return m, m.move(-1)
	case "enter":
		return m, m.submit()
	}
	return m, m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and emits an input event
// when its content changed.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focus < 0 {
		return nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		_, _ = m.form.Prompts[m.focus].Input.Handle(binding.EventInput, binding.Text(after))
		m.status = ""
	}
	return cmd
}

func (m *Model) move(step int) tea.Cmd {
	next := m.nextEnabled(m.focus, step)
	if next < 0 {
		return nil
	}
	m.blurField()
	return m.focusField(next)
}

// submit touches every field and finishes the form. Invalid forms move the
// focus to the first invalid field.
func (m *Model) submit() tea.Cmd {
	m.blurField()
	m.form.Group.TouchAll()

	result, err := m.form.Finish(m.ctx)
	switch {
	case err == nil:
		m.result = result
		m.done = true
		return tea.Quit
	case errors.Is(err, form.ErrInvalid):
		m.status = invalidStatus
		for i, prompt := range m.form.Prompts {
			if !prompt.Field.IsValid() && !prompt.Field.Snapshot().Disabled {
				return m.focusField(i)
			}
		}
		return m.focusField(max(m.focus, 0))
	default:
		m.err = err
		return tea.Quit
	}
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	_, _ = m.form.Prompts[i].Input.Handle(binding.EventFocus, nil)
	return m.inputs[i].Focus()
}

func (m *Model) blurField() {
	if m.focus < 0 {
		return
	}
	_, _ = m.form.Prompts[m.focus].Input.Handle(binding.EventBlur, nil)
	m.inputs[m.focus].Blur()
}

// nextEnabled walks from index from in direction step, wrapping around, and
// returns the first enabled field or -1.
func (m *Model) nextEnabled(from, step int) int {
	n := len(m.form.Prompts)
	for i := 1; i <= n; i++ {
		idx := ((from+step*i)%n + n) % n
		if !m.form.Prompts[idx].Field.Snapshot().Disabled {
			return idx
		}
	}
	return -1
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
		b.WriteString("\n")
	}
	for i, prompt := range m.form.Prompts {
		label := m.styles.Label.Render(prompt.Title())
		if i == m.focus {
			label = m.styles.Focused.Render(prompt.Title())
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		var issues schema.Issues
		if !prompt.Field.Snapshot().Disabled {
			issues = render.LocalizeIssues(prompt.Field.Errors(), m.opts)
		}
		for _, msg := range form.NormalizeMessages(issues.Messages()) {
			b.WriteString(m.styles.Error.Render("  " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("tab/shift+tab: move • enter: submit • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the submission payload once the form was submitted.
func (m *Model) Result() (any, bool) {
	return m.result, m.done
}

// Err returns a non-validation submit failure.
func (m *Model) Err() error {
	return m.err
}

// Aborted reports whether the user cancelled.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Focused returns the index of the focused prompt, or -1.
func (m *Model) Focused() int {
	return m.focus
}
