package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() *RunOptionsSearch {
	return &RunOptionsSearch{
		Output:           "gitlab_search_results.csv",
		ProjectsJSONFile: "projects.json",
		ProjectsCSVFile:  "projects.csv",
	}
}

func TestValidateSearchArgsThreePositional(t *testing.T) {
	target, err := validateSearchArgs(defaultOptions(), []string{"glpat-token", "mygroup", "TODO"})

	require.NoError(t, err)
	assert.Equal(t, &SearchTarget{Token: "glpat-token", GroupPath: "mygroup", Phrase: "TODO"}, target)
}

func TestValidateSearchArgsZeroJobsMeansConfigDefault(t *testing.T) {
	options := defaultOptions()
	options.Jobs = 0

	_, err := validateSearchArgs(options, []string{"glpat-token", "mygroup", "TODO"})

	require.NoError(t, err)
}

func TestValidateSearchArgsNegativeJobsMessage(t *testing.T) {
	options := defaultOptions()
	options.Jobs = -1

	_, err := validateSearchArgs(options, []string{"glpat-token", "mygroup", "TODO"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestValidateSearchArgsTokenFromEnv(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "glpat-env-token")

	target, err := validateSearchArgs(defaultOptions(), []string{"mygroup", "TODO"})

	require.NoError(t, err)
	assert.Equal(t, &SearchTarget{Token: "glpat-env-token", GroupPath: "mygroup", Phrase: "TODO"}, target)
}

func TestValidateSearchArgsTwoArgsWithoutEnvToken(t *testing.T) {
	t.Setenv("GITLAB_TOKEN", "")

	_, err := validateSearchArgs(defaultOptions(), []string{"mygroup", "TODO"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITLAB_TOKEN")
}

func TestValidateSearchArgsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		options func() *RunOptionsSearch
		args    []string
	}{
		{
			name:    "no arguments",
			options: defaultOptions,
			args:    nil,
		},
		{
			name:    "too many arguments",
			options: defaultOptions,
			args:    []string{"token", "group", "phrase", "extra"},
		},
		{
			name:    "empty token",
			options: defaultOptions,
			args:    []string{"", "group", "phrase"},
		},
		{
			name:    "empty group path",
			options: defaultOptions,
			args:    []string{"token", "", "phrase"},
		},
		{
			name:    "empty phrase",
			options: defaultOptions,
			args:    []string{"token", "group", ""},
		},
		{
			name: "negative jobs",
			options: func() *RunOptionsSearch {
				o := defaultOptions()
				o.Jobs = -1
				return o
			},
			args: []string{"token", "group", "phrase"},
		},
		{
			name: "empty output flag",
			options: func() *RunOptionsSearch {
				o := defaultOptions()
				o.Output = ""
				return o
			},
			args: []string{"token", "group", "phrase"},
		},
		{
			name: "empty projects json flag",
			options: func() *RunOptionsSearch {
				o := defaultOptions()
				o.ProjectsJSONFile = ""
				return o
			},
			args: []string{"token", "group", "phrase"},
		},
		{
			name: "empty projects csv flag",
			options: func() *RunOptionsSearch {
				o := defaultOptions()
				o.ProjectsCSVFile = ""
				return o
			},
			args: []string{"token", "group", "phrase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := validateSearchArgs(tt.options(), tt.args)
			assert.Error(t, err)
			assert.Nil(t, target)
		})
	}
}
