package coverage

import (
	"fmt"
	"io"
)

// CategoryResult summarizes one category of the validation run.
type CategoryResult struct {
	Expected    int      `json:"expected"`
	Implemented int      `json:"implemented"`
	Missing     []string `json:"missing"`
	Description string   `json:"description"`
}

// Result is the machine-readable summary of a validation run. The prose
// report rendered by WriteReport derives from the same struct, so the two
// always agree on counts.
type Result struct {
	Valid                  bool                      `json:"valid"`
	RequirementCoveragePct float64                   `json:"requirement_coverage_pct"`
	ExpectedCount          int                       `json:"expected_count"`
	ImplementedCount       int                       `json:"implemented_count"`
	MissingCount           int                       `json:"missing_count"`
	ExtraCount             int                       `json:"extra_count"`
	MissingTests           []string                  `json:"missing_tests"`
	ExtraTests             []string                  `json:"extra_tests"`
	Categories             map[string]CategoryResult `json:"categories"`
}

// Validate compares the declared test names against the manifest. Validity
// requires every category to be fully implemented and no declared test to be
// absent from the inventory.
func Validate(m *Manifest, implemented []string) *Result {
	declared := make(map[string]struct{}, len(implemented))
	for _, t := range implemented {
		declared[t] = struct{}{}
	}

	res := &Result{
		ExpectedCount:    m.TotalExpected(),
		ImplementedCount: len(implemented),
		MissingTests:     []string{},
		ExtraTests:       []string{},
		Categories:       make(map[string]CategoryResult, len(m.Categories)),
	}

	for _, c := range m.Categories {
		missing := []string{}
		found := 0
		for _, t := range c.Tests {
			if _, ok := declared[t]; ok {
				found++
			} else {
				missing = append(missing, t)
			}
		}
		res.Categories[c.Name] = CategoryResult{
			Expected:    c.Count,
			Implemented: found,
			Missing:     missing,
			Description: c.Description,
		}
		res.MissingTests = append(res.MissingTests, missing...)
	}
	res.MissingCount = len(res.MissingTests)

	expected := m.ExpectedSet()
	for _, t := range implemented {
		if _, ok := expected[t]; !ok {
			res.ExtraTests = append(res.ExtraTests, t)
		}
	}
	res.ExtraCount = len(res.ExtraTests)

	res.Valid = res.MissingCount == 0 && res.ExtraCount == 0 &&
		res.ImplementedCount == res.ExpectedCount

	if res.Valid {
		res.RequirementCoveragePct = 100.0
	} else if res.ExpectedCount > 0 {
		res.RequirementCoveragePct = float64(res.ImplementedCount-res.ExtraCount) / float64(res.ExpectedCount) * 100
	}

	return res
}

const reportRule = "======================================================================"

// WriteReport renders the human-readable validation report. With verbose set,
// fully satisfied categories additionally list every expected test.
func WriteReport(w io.Writer, m *Manifest, res *Result, verbose bool) {
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "TEST REQUIREMENT COVERAGE VALIDATION")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "📊 Test Inventory:")
	fmt.Fprintf(w, "   Expected:     %d tests\n", res.ExpectedCount)
	fmt.Fprintf(w, "   Implemented:  %d tests\n", res.ImplementedCount)
	fmt.Fprintf(w, "   Missing:      %d tests\n", res.MissingCount)
	fmt.Fprintf(w, "   Undocumented: %d tests\n", res.ExtraCount)
	fmt.Fprintln(w)

	for _, c := range m.Categories {
		status := res.Categories[c.Name]
		symbol := "✅"
		if status.Implemented != status.Expected {
			symbol = "❌"
		}
		fmt.Fprintf(w, "%s %s\n", symbol, status.Description)
		fmt.Fprintf(w, "   Expected: %d, Implemented: %d\n", status.Expected, status.Implemented)

		if len(status.Missing) > 0 {
			fmt.Fprintln(w, "   ⚠️  Missing tests:")
			for _, t := range status.Missing {
				fmt.Fprintf(w, "      - %s\n", t)
			}
		}

		if verbose && status.Implemented == status.Expected {
			for _, t := range c.Tests {
				fmt.Fprintf(w, "      ✓ %s\n", t)
			}
		}

		fmt.Fprintln(w)
	}

	if len(res.ExtraTests) > 0 {
		fmt.Fprintln(w, "⚠️  Undocumented tests (not in the expected inventory):")
		for _, t := range res.ExtraTests {
			fmt.Fprintf(w, "   - %s\n", t)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "   Action: add these to the inventory or remove if unnecessary")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, reportRule)
	if res.Valid {
		fmt.Fprintln(w, "✅ PASS: All documented test requirements are implemented!")
		fmt.Fprintf(w, "   %d/%d tests present and accounted for\n", res.ImplementedCount, res.ExpectedCount)
	} else {
		fmt.Fprintln(w, "❌ FAIL: Test requirement coverage incomplete")
		fmt.Fprintf(w, "   Requirement Coverage: %.1f%%\n", res.RequirementCoveragePct)
		if res.MissingCount > 0 {
			fmt.Fprintf(w, "   Missing %d required test(s)\n", res.MissingCount)
		}
		if res.ExtraCount > 0 {
			fmt.Fprintf(w, "   Found %d undocumented test(s)\n", res.ExtraCount)
		}
	}
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w)
}
