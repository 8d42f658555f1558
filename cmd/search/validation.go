package search

import (
	"fmt"
	"os"
)

// SearchTarget is the validated positional input of one run.
type SearchTarget struct {
	Token     string
	GroupPath string
	Phrase    string
}

// validateSearchArgs checks the positional arguments and flags of the
// search command. The token may be omitted when GITLAB_TOKEN is set.
func validateSearchArgs(options *RunOptionsSearch, args []string) (*SearchTarget, error) {
	var target SearchTarget

	switch len(args) {
	case 3:
		target = SearchTarget{Token: args[0], GroupPath: args[1], Phrase: args[2]}
	case 2:
		token := os.Getenv("GITLAB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("expected TOKEN GROUP_PATH PHRASE arguments, or GROUP_PATH PHRASE with GITLAB_TOKEN set")
		}
		target = SearchTarget{Token: token, GroupPath: args[0], Phrase: args[1]}
	default:
		return nil, fmt.Errorf("expected TOKEN GROUP_PATH PHRASE, got %d argument(s)", len(args))
	}

	if target.Token == "" {
		return nil, fmt.Errorf("the token must not be empty")
	}
	if target.GroupPath == "" {
		return nil, fmt.Errorf("the group path must not be empty")
	}
	if target.Phrase == "" {
		return nil, fmt.Errorf("the search phrase must not be empty")
	}

	if options.Jobs < 0 {
		return nil, fmt.Errorf("the 'jobs' flag must not be negative")
	}
	if options.Output == "" {
		return nil, fmt.Errorf("the 'output' flag must not be empty")
	}
	if options.ProjectsJSONFile == "" {
		return nil, fmt.Errorf("the 'projects-json-file' flag must not be empty")
	}
	if options.ProjectsCSVFile == "" {
		return nil, fmt.Errorf("the 'projects-csv-file' flag must not be empty")
	}

	return &target, nil
}
