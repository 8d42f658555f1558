package gitlab

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	api "github.com/xanzy/go-gitlab"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
)

// ErrNotFound marks the provider's "404" class of failures, so callers
// can tell a missing branch apart from a transient error.
var ErrNotFound = errors.New("not found")

// Client wraps the provider API for the per-project operations: full
// project lookup, branch resolution and blob search. Retries with
// exponential backoff are handled inside the underlying client, one
// policy for all three operations.
type Client struct {
	git    *api.Client
	logger hclog.Logger
}

func NewClient(cfg *config.Config, logger hclog.Logger, token string) (*Client, error) {
	hc := cfg.HttpClient
	retries := hc.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}

	git, err := api.NewClient(token,
		api.WithBaseURL(strings.TrimSuffix(cfg.Search.BaseURL, "/")+"/api/v4"),
		api.WithCustomRetryMax(retries),
		api.WithCustomRetryWaitMinMax(time.Duration(hc.RetryWaitTime), time.Duration(hc.RetryMaxWaitTime)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	return &Client{git: git, logger: logger}, nil
}

// GetProject resolves the full project record by identifier.
func (c *Client) GetProject(id int) (*Project, error) {
	project, resp, err := c.git.Projects.GetProject(id, nil)
	if err != nil {
		return nil, classify(resp, err)
	}

	return &Project{
		ID:            project.ID,
		Name:          project.Name,
		DefaultBranch: project.DefaultBranch,
	}, nil
}

// GetBranch resolves a branch reference by name. A missing branch is
// reported as ErrNotFound.
func (c *Client) GetBranch(projectID int, name string) (*Branch, error) {
	branch, resp, err := c.git.Branches.GetBranch(projectID, name)
	if err != nil {
		return nil, classify(resp, err)
	}

	return &Branch{Name: branch.Name}, nil
}

// SearchBlobs runs a content search for the exact phrase scoped to ref
// and drains every result page.
func (c *Client) SearchBlobs(projectID int, phrase, ref string) ([]Blob, error) {
	opt := &api.SearchOptions{
		ListOptions: api.ListOptions{PerPage: listPageSize},
		Ref:         api.String(ref),
	}

	var matches []Blob
	for {
		blobs, resp, err := c.git.Search.BlobsByProject(projectID, phrase, opt)
		if err != nil {
			return nil, classify(resp, err)
		}
		for _, blob := range blobs {
			matches = append(matches, Blob{Filename: blob.Filename, Data: blob.Data})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return matches, nil
}

func classify(resp *api.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
