// Package cmd provides the root command and CLI setup for go2json.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	"go2json.dev/pkg/go2json/internal/adapter"
	"go2json.dev/pkg/go2json/internal/controller"
	"go2json.dev/pkg/go2json/internal/domain"
	m "go2json.dev/pkg/go2json/internal/model"
)

var sourcePackageFlag string
var runParallelFlag int
var logFileFlag string
var verboseFlag bool

const sourcesHelp = `Each source is a file path, a storage URL (file://, mem://, and the
schemes supported by viant/afs) or - for standard input. Without sources the
snippet is read from standard input.`

const rootLongDescription = `go2json compiles Go type declarations at runtime and prints a
default-constructed instance of every type, so the JSON or YAML shape of the
types can be inspected without writing a program.

` + sourcesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "go2json",
		Short:         "Instantiate Go types and print them as JSON or YAML",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&sourcePackageFlag, packageFlagName, viper.GetString(sourcePackageConfigKey), "package clause given to snippets without one")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(packageFlagName), sourcePackageConfigKey)

	cmd.PersistentFlags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of sources processed in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newWorkflow wires the pipeline to the streams of cmd.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	goFileAdapter := adapter.NewLocalGoFileAdapter()
	interpreterAdapter := adapter.NewYaegiInterpreterAdapter()

	generator := domain.NewGenerator(
		domain.NewNormalizer(goFileAdapter, viper.GetString(sourcePackageConfigKey)),
		domain.NewCompiler(goFileAdapter, interpreterAdapter, m.DefaultReferenceSet),
		domain.NewMaterializer(interpreterAdapter),
	)

	ui := controller.NewSimpleUI(cmd, adapter.NewLocalDocumentWriter(viper.GetInt(outputIndentConfigKey)))
	fsAdapter := adapter.NewSourceFSAdapter(afs.New(), cmd.InOrStdin())

	return domain.NewWorkflowPipeline(fsAdapter, ui, generator)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)

		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{adapter.StdinPath}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func parseFormat(value string) (m.Format, error) {
	switch format := m.Format(value); format {
	case m.FormatJSON, m.FormatYAML:
		return format, nil
	case "yml":
		return m.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", value)
	}
}
