package searcher

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/groupgrep/groupgrep/internal/gitlab"
	"github.com/groupgrep/groupgrep/internal/report"
)

// Runner fans one SearchProject call per project out over a bounded
// pool of goroutines and collects the rows as workers finish.
type Runner struct {
	searcher *Searcher
	jobs     int
	logger   hclog.Logger
}

func NewRunner(searcher *Searcher, jobs int, logger hclog.Logger) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		searcher: searcher,
		jobs:     jobs,
		logger:   logger,
	}
}

// Run searches every project with at most `jobs` in flight and returns
// the union of all rows. Rows of one project stay contiguous; no order
// is guaranteed across projects. A misbehaving worker is contained: it
// is logged and only its own project goes unreported.
func (r *Runner) Run(projects []gitlab.Project, phrase string) []report.Row {
	total := len(projects)
	r.logger.Info("search starting", "projects", total, "goroutines", r.jobs)

	guard := make(chan struct{}, r.jobs)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var rows []report.Row
	completed := 0

	for _, project := range projects {
		guard <- struct{}{} // blocks while the pool is full
		wg.Add(1)
		go func(project gitlab.Project) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("project search panicked", "project", project.Name, "panic", rec)
				}
				<-guard
			}()

			projectRows := r.searcher.SearchProject(project, phrase)

			mu.Lock()
			rows = append(rows, projectRows...)
			completed++
			done := completed
			mu.Unlock()

			r.logger.Info("project processed", "project", project.Name, "completed", done, "total", total)
		}(project)
	}
	wg.Wait()

	return rows
}
