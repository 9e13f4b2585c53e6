package cli

import (
	"fmt"
	"strings"

	"github.com/safedep/toolgate/schema"
	"github.com/spf13/cobra"
)

// NewSchemaCmd creates the schema command.
func NewSchemaCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "schema [name]",
		Short: "Print the JSON Schema of hook inputs and outputs",
		Long: fmt.Sprintf(`Print the JSON Schema of hook inputs and outputs.

Available schemas: %s.
Without a name, the hook-response schema is printed.`, strings.Join(schema.Names(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range schema.Names() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
						return err
					}
				}
				return nil
			}

			name := "hook-response"
			if len(args) == 1 {
				name = args[0]
			}

			data, err := schema.Generate(name)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return err
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list available schema names")

	return cmd
}
