package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groupgrep/groupgrep/cmd/search"
	"github.com/groupgrep/groupgrep/cmd/upload"
	"github.com/groupgrep/groupgrep/cmd/version"
	"github.com/groupgrep/groupgrep/pkg/shared/config"
	"github.com/groupgrep/groupgrep/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "groupgrep [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Groupgrep searches every project of a GitLab group for a literal phrase.",
		Long: `Groupgrep enumerates all projects under a GitLab group (subgroups
included), searches each project's primary branch for a literal phrase,
and writes a flat CSV report of where the phrase appears.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(search.SearchCmd)
	rootCmd.AddCommand(upload.UploadCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps failures to an exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	search.Init(AppConfig)
	upload.Init(AppConfig)
	version.Init(AppConfig)
}
