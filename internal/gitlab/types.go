package gitlab

import (
	"encoding/json"
)

// Project is the slice of the provider's project object the search
// pipeline needs. Immutable once fetched.
type Project struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch"`
}

// Branch is a resolved branch reference.
type Branch struct {
	Name string `json:"name"`
}

// Blob is a single content-search match: the file it was found in and
// the surrounding content returned by the provider.
type Blob struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// Inventory is the full project listing of one run. Raw keeps the
// provider's untouched project objects for the JSON artifact, Projects
// the parsed view the pipeline works with.
type Inventory struct {
	Projects []Project
	Raw      []json.RawMessage
}
