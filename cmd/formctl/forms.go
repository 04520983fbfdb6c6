package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formctl/pkg/orchestrator"
)

// formCmd runs one of the built-in credential forms.
func (a *app) formCmd(id, short string) *cobra.Command {
	var (
		values map[string]string
		submit bool
	)
	cmd := &cobra.Command{
		Use:   id,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd.Context(), nil, orchestrator.Request{
				FormID: id,
				Values: values,
				Submit: submit,
			})
		},
	}
	addValueFlags(cmd, &values, &submit)
	return cmd
}

func addValueFlags(cmd *cobra.Command, values *map[string]string, submit *bool) {
	cmd.Flags().StringToStringVar(values, "set", nil, "prefill field values (name=value), fed through input and blur")
	cmd.Flags().BoolVar(submit, "submit", false, "mark every field touched before rendering (with --ui html)")
}
