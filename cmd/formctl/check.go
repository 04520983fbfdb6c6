package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	var specPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate form definitions without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadSpec(specPath)
			if err != nil {
				return fmt.Errorf("load spec: %w", err)
			}
			if store.Empty() {
				return fmt.Errorf("%s defines no forms", specPath)
			}
			for _, id := range store.IDs() {
				built, err := store.Build(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "ok  %s (%d fields)\n", id, len(built.View.Prompts))
				a.logger.Debug("form checked", "form", id, "source", built.Definition.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "definition file or directory")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}
