package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinelist/cinelist-server/internal/listdoc"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <list-id>",
		Short: "Write a list as a JSON document",
		Long: "Export resolves every item against TMDB and writes the portable list document.\n" +
			"Items the catalog no longer knows are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(func(a *app) error {
				doc, err := a.transfer.Export(cmd.Context(), a.userID, args[0])
				if err != nil {
					return err
				}
				data, err := listdoc.Encode(doc)
				if err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d items to %s\n", len(doc.Items), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default: stdout)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create a new list from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return opts.run(func(a *app) error {
				_, list, err := a.transfer.Import(cmd.Context(), a.userID, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s with %d items\n", list.Name, list.ID, len(list.Items))
				return nil
			})
		},
	}
}
