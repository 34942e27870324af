package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const interpreterModule = "github.com/traefik/yaegi"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the interpreter version used to build this tool.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("go2json version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)

			if version := moduleVersion(info, interpreterModule); version != "" {
				cmd.Println("yaegi version\t", version)
			}
		},
	}
}

func moduleVersion(info *debug.BuildInfo, path string) string {
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}

		if dep.Replace != nil {
			return dep.Replace.Version
		}

		return dep.Version
	}

	return ""
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
