package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formctl/pkg/orchestrator"
)

func (a *app) runCmd() *cobra.Command {
	var (
		specPath string
		formID   string
		values   map[string]string
		submit   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a form from a definition file",
		Example: `  formctl run --spec forms/signup.yaml --form signup
  formctl run --spec forms --form invite --ui html --set code=abc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadSpec(specPath)
			if err != nil {
				return fmt.Errorf("load spec: %w", err)
			}
			if formID == "" {
				ids := store.IDs()
				if len(ids) != 1 {
					return fmt.Errorf("--form is required (definitions: %v)", ids)
				}
				formID = ids[0]
			}
			return a.generate(cmd.Context(), store, orchestrator.Request{
				FormID: formID,
				Values: values,
				Submit: submit,
			})
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "definition file or directory")
	cmd.Flags().StringVar(&formID, "form", "", "form id (optional when the spec defines one form)")
	_ = cmd.MarkFlagRequired("spec")
	addValueFlags(cmd, &values, &submit)
	return cmd
}
