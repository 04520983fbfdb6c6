package binding

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formctl/pkg/control"
	"github.com/goliatone/go-formctl/pkg/schema"
)

func TestDirective_InputFocusBlur(t *testing.T) {
	c := control.New("", control.WithName[string]("email"), control.WithSchema[string](schema.String().Email()))
	d := BindString(c)

	issues, err := d.Handle(EventFocus, nil)
	require.NoError(t, err)
	require.Nil(t, issues)
	require.True(t, c.Focused.Get())

	issues, err = d.Handle(EventInput, Text("not-an-email"))
	require.NoError(t, err)
	require.Nil(t, issues, "errors stay hidden until blur")
	require.Equal(t, "not-an-email", c.Value.Get())
	require.True(t, c.Dirty.Get())
	require.False(t, c.Pristine.Get())

	issues, err = d.Handle(EventBlur, nil)
	require.NoError(t, err)
	require.True(t, c.Touched.Get())
	require.False(t, c.Focused.Get())
	require.Len(t, issues, 1)
	require.Equal(t, "Invalid email", issues[0].Message)
	require.Equal(t, "email", issues[0].Path)

	issues = d.Input("a@b.com")
	require.Nil(t, issues)
	require.True(t, c.IsValid())
}

func TestDirective_DependentsCollectedAfterOwnIssues(t *testing.T) {
	password := control.New("", control.WithName[string]("password"),
		control.WithSchema[string](schema.String().Min(8, "Password must be at least 8 characters")))
	confirm := control.New("", control.WithName[string]("confirm"),
		control.WithReactiveSchema(func() schema.Schema[string] {
			return schema.String().Equals(password.Value.Get(), "Passwords do not match")
		}, password.Value))

	pw := BindString(password, WithDependents[string](confirm))
	cf := BindString(confirm)

	pw.Input("abcdefgh")
	pw.Blur()
	cf.Input("abcdefgh")
	require.Nil(t, cf.Blur())

	issues := pw.Input("short")
	require.Len(t, issues, 2)
	require.Equal(t, "password", issues[0].Path)
	require.Equal(t, "Password must be at least 8 characters", issues[0].Message)
	require.Equal(t, "confirm", issues[1].Path)
	require.Equal(t, "Passwords do not match", issues[1].Message)
}

func TestDirective_DisabledIgnoresEvents(t *testing.T) {
	c := control.New("keep")
	c.Disabled.Set(true)
	d := BindString(c)

	d.Input("changed")
	d.Focus()
	d.Blur()

	require.Equal(t, "keep", c.Value.Get())
	require.False(t, c.Focused.Get())
	require.False(t, c.Touched.Get())
	require.True(t, c.Pristine.Get())
}

func TestDirective_ParserAndObserver(t *testing.T) {
	c := control.New(0, control.WithName[int]("age"))
	var events []Event
	d := Bind(c,
		WithParser[int](func(raw string) (int, error) { return strconv.Atoi(raw) }),
		WithObserver[int](func(ev Event, _ schema.Issues) { events = append(events, ev) }),
	)

	require.Nil(t, d.Input("42"))
	require.Equal(t, 42, c.Value.Get())

	issues := d.Input("forty")
	require.Len(t, issues, 1)
	require.Equal(t, schema.CodeInvalidType, issues[0].Code)
	require.Equal(t, 42, c.Value.Get(), "rejected content keeps the previous value")

	require.Equal(t, []Event{EventInput, EventInput}, events)
}

func TestDirective_MissingParser(t *testing.T) {
	c := control.New(1.5)
	issues := Bind(c).Input("2.5")
	require.Len(t, issues, 1)
	require.Equal(t, schema.CodeInvalidType, issues[0].Code)
	require.Equal(t, 1.5, c.Value.Get())
}

func TestDirective_UnknownEvent(t *testing.T) {
	d := BindString(control.New(""))
	_, err := d.Handle(Event("change"), Text("x"))
	require.True(t, errors.Is(err, ErrUnknownEvent))
}

func TestElementFunc(t *testing.T) {
	content := "typed"
	el := ElementFunc(func() string { return content })
	d := BindString(control.New(""))
	_, err := d.Handle(EventInput, el)
	require.NoError(t, err)
	require.Equal(t, "typed", d.Control().Value.Get())
}
