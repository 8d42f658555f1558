package report

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const phraseMatchRuleID = "phrase-match"

// WriteSarif exports the Found rows as a SARIF 2.1.0 report with one
// result per match. Non-Found rows carry no location and are skipped.
func WriteSarif(path, phrase string, rows []Row) error {
	rep, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("groupgrep", "https://github.com/groupgrep/groupgrep")
	run.AddRule(phraseMatchRuleID).
		WithDescription(fmt.Sprintf("Literal occurrence of %q", phrase))

	for _, row := range rows {
		if row.Status != StatusFound {
			continue
		}
		run.CreateResultForRule(phraseMatchRuleID).
			WithLevel("note").
			WithMessage(sarif.NewTextMessage(row.Snippet)).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(
							sarif.NewSimpleArtifactLocation(fmt.Sprintf("%s/%s", row.Project, row.File)),
						),
				),
			)
	}

	rep.AddRun(run)
	if err := rep.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write SARIF report %q: %w", path, err)
	}
	return nil
}
