package cmd

import (
	"github.com/spf13/cobra"
	"go2json.dev/pkg/go2json/internal/domain"
)

// normalizeCmd represents the normalize command.
var normalizeCmd = newNormalizeCmd()

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [source]",
		Short: "Print a source with its package clause and required imports",
		Long: `Print the source as it is compiled: a package clause is added when missing
and the imports every unit gets (time, container/list, encoding/json, sort,
strings) are appended after the existing ones.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Normalize(cmd.Context(), domain.NormalizeArgs{
				Source: parsePaths(args)[0],
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
