package cmd

import (
	"github.com/KaramelBytes/csvscope/internal/render"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the analyze --format json output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := render.Schema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(b, '\n'))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
