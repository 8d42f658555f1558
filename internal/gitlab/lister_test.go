package gitlab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
	sharederrors "github.com/groupgrep/groupgrep/pkg/shared/errors"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Search.BaseURL = baseURL
	cfg.HttpClient.RetryWaitTime = config.Duration(time.Millisecond)
	cfg.HttpClient.RetryMaxWaitTime = config.Duration(2 * time.Millisecond)
	cfg.HttpClient.Timeout = config.Duration(5 * time.Second)
	return cfg
}

func projectsPage(t *testing.T, w http.ResponseWriter, projects []Project) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(projects); err != nil {
		t.Fatalf("failed to encode page: %v", err)
	}
}

func TestListGroupProjectsPagination(t *testing.T) {
	var requests int32

	pages := map[string][]Project{
		"1": {{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
		"2": {{ID: 4, Name: "D"}, {ID: 5, Name: "E"}},
		"3": {},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		assert.Equal(t, "/api/v4/groups/mygroup/projects", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("include_subgroups"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "secret-token", r.Header.Get("PRIVATE-TOKEN"))

		projectsPage(t, w, pages[r.URL.Query().Get("page")])
	}))
	defer server.Close()

	lister := NewLister(testConfig(server.URL), hclog.NewNullLogger(), "secret-token")
	inventory, err := lister.ListGroupProjects("mygroup")

	require.NoError(t, err)
	// Stops on the first empty page: one request per non-empty page plus one.
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	assert.Len(t, inventory.Projects, 5)
	assert.Len(t, inventory.Raw, 5)
	assert.Equal(t, Project{ID: 1, Name: "A"}, inventory.Projects[0])
	assert.Equal(t, Project{ID: 5, Name: "E"}, inventory.Projects[4])
}

func TestListGroupProjectsRetriesThenSucceeds(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n < 5 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		projectsPage(t, w, []Project{})
	}))
	defer server.Close()

	lister := NewLister(testConfig(server.URL), hclog.NewNullLogger(), "secret-token")
	inventory, err := lister.ListGroupProjects("mygroup")

	// Fails four times, succeeds on the fifth attempt.
	require.NoError(t, err)
	assert.Equal(t, int32(5), atomic.LoadInt32(&requests))
	assert.Empty(t, inventory.Projects)
}

func TestListGroupProjectsFatalAfterRetryExhaustion(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.Error(w, "still broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	lister := NewLister(testConfig(server.URL), hclog.NewNullLogger(), "secret-token")
	inventory, err := lister.ListGroupProjects("mygroup")

	require.Error(t, err)
	assert.Nil(t, inventory)

	var listingErr *sharederrors.ListingError
	require.ErrorAs(t, err, &listingErr)
	assert.Equal(t, "mygroup", listingErr.GroupPath)
	// All five attempts were spent on page 1; nothing else was requested.
	assert.Equal(t, int32(5), atomic.LoadInt32(&requests))
}

func TestListGroupProjectsEscapesGroupPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/groups/parent%2Fchild/projects", r.URL.EscapedPath())
		projectsPage(t, w, []Project{})
	}))
	defer server.Close()

	lister := NewLister(testConfig(server.URL), hclog.NewNullLogger(), "secret-token")
	_, err := lister.ListGroupProjects("parent/child")
	require.NoError(t, err)
}

func TestListGroupProjectsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"an array"}`)
	}))
	defer server.Close()

	lister := NewLister(testConfig(server.URL), hclog.NewNullLogger(), "secret-token")
	_, err := lister.ListGroupProjects("mygroup")
	require.Error(t, err)

	var listingErr *sharederrors.ListingError
	assert.ErrorAs(t, err, &listingErr)
}
