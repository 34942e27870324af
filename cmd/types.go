package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go2json.dev/pkg/go2json/internal/domain"
)

// typesCmd represents the types command.
var typesCmd = newTypesCmd()

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [sources...]",
		Short: "List the declared types and whether they are instantiated",
		Long: `Compile every source without running it and print a table of its declared
types: kind, underlying type, default constructor and whether generate would
produce an instance. Compiler warnings follow the table.

` + sourcesHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Types(cmd.Context(), domain.TypesArgs{
				Sources:  parsePaths(args),
				Parallel: viper.GetInt(runParallelConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
