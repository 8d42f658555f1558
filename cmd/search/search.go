package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/groupgrep/groupgrep/internal/gitlab"
	"github.com/groupgrep/groupgrep/internal/report"
	"github.com/groupgrep/groupgrep/internal/searcher"
	"github.com/groupgrep/groupgrep/pkg/shared/config"
	"github.com/groupgrep/groupgrep/pkg/shared/errors"
	"github.com/groupgrep/groupgrep/pkg/shared/files"
	"github.com/groupgrep/groupgrep/pkg/shared/logger"
)

// RunOptionsSearch holds the flags of the search command.
type RunOptionsSearch struct {
	Output           string
	ProjectsJSONFile string
	ProjectsCSVFile  string
	Jobs             int
	Sarif            bool
}

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	searchOptions RunOptionsSearch

	exampleSearchUsage = `  # Search every project under a group for a phrase
  groupgrep search glpat-xxxx mygroup "deprecated_api_call"

  # Token taken from the environment instead of the first argument
  GITLAB_TOKEN=glpat-xxxx groupgrep search mygroup/payments "BEGIN RSA PRIVATE KEY"

  # Custom artifact locations and a wider worker pool
  groupgrep search glpat-xxxx mygroup "TODO" -o /tmp/report.csv -j 10

  # Additionally export the matches as SARIF
  groupgrep search glpat-xxxx mygroup "license" --sarif`
)

// SearchCmd represents the search command.
var SearchCmd = &cobra.Command{
	Use:                   "search TOKEN GROUP_PATH PHRASE [--output PATH] [--projects-json-file PATH] [--projects-csv-file PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSearchUsage,
	Short:                 "Search for a phrase across all projects of a GitLab group",
	RunE:                  runSearchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	target, err := validateSearchArgs(&searchOptions, args)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("invalid search arguments: %w", err), 1)
	}

	lg := logger.NewLogger(AppConfig, "search").With("run_id", uuid.New().String())

	// All artifacts of one run share its start timestamp.
	startedAt := time.Now()
	outputFile := files.TimestampedPath(searchOptions.Output, startedAt)
	projectsJSONFile := files.TimestampedPath(searchOptions.ProjectsJSONFile, startedAt)
	projectsCSVFile := files.TimestampedPath(searchOptions.ProjectsCSVFile, startedAt)

	// The report is created up front: a run that dies on listing still
	// leaves a header-only report behind.
	writer, err := report.NewWriter(outputFile)
	if err != nil {
		lg.Error("failed to create report", "path", outputFile, "error", err)
		return errors.NewCommandError(err, 1)
	}
	defer writer.Close()

	lister := gitlab.NewLister(AppConfig, lg, target.Token)
	inventory, err := lister.ListGroupProjects(target.GroupPath)
	if err != nil {
		lg.Error("failed to fetch project inventory", "group", target.GroupPath, "error", err)
		return errors.NewCommandError(err, 2)
	}

	// Inventory artifacts are persisted before any search begins.
	if err := report.WriteInventoryJSON(projectsJSONFile, inventory.Raw); err != nil {
		lg.Error("failed to save inventory", "path", projectsJSONFile, "error", err)
		return errors.NewCommandError(err, 1)
	}
	if err := report.WriteInventoryCSV(projectsCSVFile, inventory.Projects); err != nil {
		lg.Error("failed to save inventory", "path", projectsCSVFile, "error", err)
		return errors.NewCommandError(err, 1)
	}
	lg.Info("project inventory saved", "projects", len(inventory.Projects), "json", projectsJSONFile, "csv", projectsCSVFile)

	client, err := gitlab.NewClient(AppConfig, lg, target.Token)
	if err != nil {
		lg.Error("failed to create provider client", "error", err)
		return errors.NewCommandError(err, 1)
	}

	jobs := searchOptions.Jobs
	if jobs == 0 {
		jobs = AppConfig.Search.Jobs
	}

	runner := searcher.NewRunner(searcher.New(client, AppConfig.Search.Branch, lg), jobs, lg)
	rows := runner.Run(inventory.Projects, target.Phrase)

	if err := writer.Append(rows); err != nil {
		lg.Error("failed to write report rows", "path", outputFile, "error", err)
		return errors.NewCommandError(err, 1)
	}

	if searchOptions.Sarif {
		sarifFile := files.TimestampedPath(files.SwapExt(searchOptions.Output, ".sarif"), startedAt)
		if err := report.WriteSarif(sarifFile, target.Phrase, rows); err != nil {
			lg.Error("failed to write SARIF report", "path", sarifFile, "error", err)
			return errors.NewCommandError(err, 1)
		}
		lg.Info("SARIF report saved", "path", sarifFile)
	}

	lg.Info("search command completed successfully", "rows", len(rows), "output", outputFile)
	return nil
}

func init() {
	SearchCmd.Flags().StringVarP(&searchOptions.Output, "output", "o", "gitlab_search_results.csv", "Path of the CSV search report.")
	SearchCmd.Flags().StringVar(&searchOptions.ProjectsJSONFile, "projects-json-file", "projects.json", "Path of the raw project inventory (JSON).")
	SearchCmd.Flags().StringVar(&searchOptions.ProjectsCSVFile, "projects-csv-file", "projects.csv", "Path of the flattened project inventory (CSV).")
	SearchCmd.Flags().IntVarP(&searchOptions.Jobs, "jobs", "j", 0, "Number of concurrent project searches (0 means the config value).")
	SearchCmd.Flags().BoolVar(&searchOptions.Sarif, "sarif", false, "Additionally export Found matches as a SARIF report.")
	SearchCmd.Flags().BoolP("help", "h", false, "Show help for the search command.")
}
