package searcher

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/groupgrep/groupgrep/internal/gitlab"
	"github.com/groupgrep/groupgrep/internal/report"
	"github.com/groupgrep/groupgrep/pkg/shared/config"
)

// API is the provider surface one project search needs. Retries are
// the implementation's concern; by the time an error reaches the
// searcher it is final.
type API interface {
	GetProject(id int) (*gitlab.Project, error)
	GetBranch(projectID int, name string) (*gitlab.Branch, error)
	SearchBlobs(projectID int, phrase, ref string) ([]gitlab.Blob, error)
}

// Searcher runs the per-project pipeline: resolve the full project
// record, resolve the primary branch, search its content, classify.
type Searcher struct {
	api    API
	branch string
	logger hclog.Logger
}

// New builds a Searcher. branch is the configured branch name; when
// empty, each project's default_branch metadata is used instead.
func New(api API, branch string, logger hclog.Logger) *Searcher {
	return &Searcher{
		api:    api,
		branch: branch,
		logger: logger,
	}
}

// SearchProject classifies one project into report rows. It never
// returns an error: expected failure modes map to dedicated rows, and
// anything unexpected maps to a single Error row, so every inventory
// project is accounted for in the report.
func (s *Searcher) SearchProject(listed gitlab.Project, phrase string) []report.Row {
	project, err := s.api.GetProject(listed.ID)
	if err != nil {
		s.logger.Error("failed to get project", "project_id", listed.ID, "project", listed.Name, "error", err)
		return []report.Row{s.errorRow(listed.Name, s.branchName(listed))}
	}

	branchName := s.branchName(*project)
	branch, err := s.api.GetBranch(project.ID, branchName)
	if err != nil {
		if errors.Is(err, gitlab.ErrNotFound) {
			s.logger.Warn("branch not found", "project", project.Name, "branch", branchName)
			return []report.Row{{
				Project: project.Name,
				Branch:  branchName,
				Status:  report.StatusBranchMissing,
			}}
		}
		s.logger.Error("failed to resolve branch", "project", project.Name, "branch", branchName, "error", err)
		return []report.Row{s.errorRow(project.Name, branchName)}
	}

	blobs, err := s.api.SearchBlobs(project.ID, phrase, branch.Name)
	if err != nil {
		s.logger.Error("blob search failed", "project", project.Name, "branch", branch.Name, "error", err)
		return []report.Row{s.errorRow(project.Name, branch.Name)}
	}

	if len(blobs) == 0 {
		return []report.Row{{
			Project: project.Name,
			Branch:  branch.Name,
			Status:  report.StatusNotFound,
		}}
	}

	rows := make([]report.Row, 0, len(blobs))
	for _, blob := range blobs {
		rows = append(rows, report.Row{
			Project: project.Name,
			Branch:  branch.Name,
			File:    blob.Filename,
			Snippet: strings.TrimSpace(blob.Data),
			Status:  report.StatusFound,
		})
	}
	return rows
}

// branchName picks the branch to search: the configured name wins,
// then the project's own default branch, then the historical fallback.
func (s *Searcher) branchName(project gitlab.Project) string {
	if s.branch != "" {
		return s.branch
	}
	if project.DefaultBranch != "" {
		return project.DefaultBranch
	}
	return config.DefaultBranch
}

func (s *Searcher) errorRow(project, branch string) report.Row {
	return report.Row{
		Project: project,
		Branch:  branch,
		Status:  report.StatusError,
	}
}
