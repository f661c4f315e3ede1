package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/spf13/cobra"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

var errValidationFailed = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a project record file for data problems",
		Long: `Normalizes every record and reports records that would reach the
dashboard degraded: duplicate ids, unrecognized risk labels, scores outside
0-100, and coordinates that are present but unusable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := loadRecords(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			projects, err := normalizeAll(recs)
			if err != nil {
				return err
			}
			if !report(cmd.OutOrStdout(), validate(recs, projects), len(recs)) {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON array of raw project records (- for stdin)")
	return cmd
}

// validate runs every phase; recs and projects are index-aligned.
func validate(recs []domain.RawRecord, projects []domain.Project) []*phase {
	return []*phase{
		validateIdentity(recs, projects),
		validateRisk(projects),
		validateLocation(recs, projects),
	}
}

func validateIdentity(recs []domain.RawRecord, projects []domain.Project) *phase {
	p := &phase{name: "Phase 1: Identity"}
	seen := map[string]int{}
	for i, proj := range projects {
		if !hasAnyKey(recs[i], "id", "project_id") {
			p.errorf("record %d: no id, generated %s", i, proj.ID)
		}
		if first, ok := seen[proj.ID]; ok {
			p.errorf("record %d: id %q duplicates record %d", i, proj.ID, first)
			continue
		}
		seen[proj.ID] = i
	}
	return p
}

func validateRisk(projects []domain.Project) *phase {
	p := &phase{name: "Phase 2: Risk labels"}
	for i, proj := range projects {
		if proj.RiskLabel != "" && proj.Risk == domain.RiskIndeterminate {
			p.errorf("record %d (%s): risk label %q not recognized", i, proj.ID, proj.RiskLabel)
		}
		if proj.Score < 0 || proj.Score > 100 {
			p.errorf("record %d (%s): score %g outside 0-100", i, proj.ID, proj.Score)
		}
	}
	return p
}

func validateLocation(recs []domain.RawRecord, projects []domain.Project) *phase {
	p := &phase{name: "Phase 3: Location"}
	for i, proj := range projects {
		if proj.Geo == nil && hasAnyKey(recs[i], "latitude", "lat") {
			p.errorf("record %d (%s): coordinates present but invalid", i, proj.ID)
		}
	}
	return p
}

// hasAnyKey reports whether rec has a non-null value under any of keys,
// ignoring case and underscores so project_id matches projectId.
func hasAnyKey(rec domain.RawRecord, keys ...string) bool {
	fold := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "_", "")) }
	for k, v := range rec {
		if v == nil {
			continue
		}
		for _, want := range keys {
			if fold(k) == fold(want) {
				return true
			}
		}
	}
	return false
}

func report(w io.Writer, phases []*phase, records int) bool {
	fmt.Fprintln(w, "=== Project Record Validation ===")
	fmt.Fprintln(w)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-28s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "\nRecords: %d\n", records)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
	} else {
		fmt.Fprintln(w, "\nValidation FAILED.")
	}
	return allPassed
}
