package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go2json.dev/pkg/go2json/internal/domain"
)

var outputFormatFlag string
var outputIndentFlag int

const generateLongDescription = `Compile the type declarations of every source and print one document per
source, mapping each type name to a default-constructed instance.

Enumerations (defined basic types with typed constants) and types whose
NewT constructors all take arguments are skipped. Interface, func, chan and
generic types are never instantiated.

` + sourcesHelp

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [sources...]",
		Aliases: []string{"gen"},
		Short:   "Print default instances of the declared types",
		Long:    generateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(viper.GetString(outputFormatConfigKey))
			if err != nil {
				return err
			}

			return newWorkflow(cmd).Generate(cmd.Context(), domain.GenerateArgs{
				Sources:  parsePaths(args),
				Format:   format,
				Parallel: viper.GetInt(runParallelConfigKey),
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormatFlag, formatFlagName, "f", viper.GetString(outputFormatConfigKey), "output format: json or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), outputFormatConfigKey)

	cmd.Flags().IntVar(&outputIndentFlag, indentFlagName, viper.GetInt(outputIndentConfigKey), "spaces per indentation level, 0 for compact JSON")
	bindFlagToConfig(cmd.Flags().Lookup(indentFlagName), outputIndentConfigKey)
}
