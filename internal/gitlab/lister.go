package gitlab

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
	"github.com/groupgrep/groupgrep/pkg/shared/errors"
	"github.com/groupgrep/groupgrep/pkg/shared/httpclient"
)

const listPageSize = 100

// Lister fetches the full project inventory of a group, subgroups
// included, from the provider's listing endpoint.
type Lister struct {
	httpc   *resty.Client
	baseURL string
	token   string
	logger  hclog.Logger
}

// NewLister builds a Lister on top of the shared resty client; the
// page-request retry policy comes from the http_client configuration.
func NewLister(cfg *config.Config, logger hclog.Logger, token string) *Lister {
	return &Lister{
		httpc:   httpclient.NewRestyClient(logger, cfg),
		baseURL: strings.TrimSuffix(cfg.Search.BaseURL, "/") + "/api/v4",
		token:   token,
		logger:  logger,
	}
}

// ListGroupProjects pages through the group's project listing until the
// first empty page. Each page request is retried independently; a page
// that still fails after the last attempt aborts the whole listing with
// a ListingError, so no partial inventory is ever used.
func (l *Lister) ListGroupProjects(groupPath string) (*Inventory, error) {
	inventory := &Inventory{}

	for page := 1; ; page++ {
		projects, raw, err := l.fetchPage(groupPath, page)
		if err != nil {
			return nil, errors.NewListingError(groupPath, err)
		}
		if len(projects) == 0 {
			break
		}

		inventory.Projects = append(inventory.Projects, projects...)
		inventory.Raw = append(inventory.Raw, raw...)
		l.logger.Debug("listing page fetched", "group", groupPath, "page", page, "projects", len(projects))
	}

	l.logger.Info("project inventory collected", "group", groupPath, "projects", len(inventory.Projects))
	return inventory, nil
}

func (l *Lister) fetchPage(groupPath string, page int) ([]Project, []json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/groups/%s/projects", l.baseURL, url.PathEscape(groupPath))

	resp, err := l.httpc.R().
		SetHeader("PRIVATE-TOKEN", l.token).
		SetQueryParams(map[string]string{
			"include_subgroups": "true",
			"per_page":          strconv.Itoa(listPageSize),
			"page":              strconv.Itoa(page),
		}).
		Get(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("listing page %d request failed: %w", page, err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("listing page %d returned %s", page, resp.Status())
	}

	// The body is decoded twice: once into the raw objects persisted as
	// the inventory artifact, once into the parsed projects.
	var raw []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, nil, fmt.Errorf("listing page %d is not a JSON array: %w", page, err)
	}
	var projects []Project
	if err := json.Unmarshal(resp.Body(), &projects); err != nil {
		return nil, nil, fmt.Errorf("listing page %d has malformed project objects: %w", page, err)
	}

	return projects, raw, nil
}
