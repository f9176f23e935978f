package ui

import (
	"strings"
	"testing"
)

func TestFuzzyScoreExactMatch(t *testing.T) {
	score := fuzzyScore("go", "go")
	if score != 1000 {
		t.Errorf("Expected exact match score 1000, got %d", score)
	}
}

func TestFuzzyScorePrefixMatch(t *testing.T) {
	score := fuzzyScore("kubernetes", "kube")
	if score < 500 {
		t.Errorf("Expected prefix match score >= 500, got %d", score)
	}
}

func TestFuzzyScoreContainsMatch(t *testing.T) {
	score := fuzzyScore("supply-chain", "chain")
	if score < 200 {
		t.Errorf("Expected contains match score >= 200, got %d", score)
	}
}

func TestFuzzyScoreSubsequenceMatch(t *testing.T) {
	score := fuzzyScore("terraform", "trm")
	if score <= 0 {
		t.Errorf("Expected subsequence match score > 0, got %d", score)
	}
}

func TestFuzzyScoreNoMatch(t *testing.T) {
	score := fuzzyScore("go", "xyz")
	if score != 0 {
		t.Errorf("Expected no match score 0, got %d", score)
	}
}

func TestFuzzyScoreCaseInsensitive(t *testing.T) {
	score1 := fuzzyScore("Go", "go")
	score2 := fuzzyScore("go", "GO")
	if score1 != 1000 || score2 != 1000 {
		t.Errorf("Expected case-insensitive exact match, got scores %d and %d", score1, score2)
	}
}

func TestFacetPickerOpenSortsAndMarksActive(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Rust", "Go", "Python"}, []string{"Go"})

	if picker.FilteredCount() != 3 {
		t.Fatalf("Expected 3 values, got %d", picker.FilteredCount())
	}
	if picker.SelectedValue() != "Go" {
		t.Errorf("Expected the sorted list to start at Go, got %s", picker.SelectedValue())
	}
	if picker.ActiveCount() != 1 {
		t.Errorf("Expected 1 active value, got %d", picker.ActiveCount())
	}
}

func TestFacetPickerOpenClearsPreviousQuery(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Go", "Python"}, nil)
	picker.UpdateInput(keyMsg("p"))
	if picker.FilteredCount() != 1 {
		t.Fatalf("Expected the query to narrow to 1, got %d", picker.FilteredCount())
	}

	picker.Open("Filter by Sector", []string{"Energy", "Media"}, nil)
	if picker.InputValue() != "" {
		t.Errorf("Expected a fresh query after reopening, got %q", picker.InputValue())
	}
	if picker.FilteredCount() != 2 {
		t.Errorf("Expected the full vocabulary after reopening, got %d", picker.FilteredCount())
	}
}

func TestFacetPickerNavigationClamps(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Airflow", "Go", "Rust"}, nil)

	picker.MoveUp()
	if picker.SelectedValue() != "Airflow" {
		t.Errorf("Expected the selection clamped at the top, got %s", picker.SelectedValue())
	}

	picker.MoveDown()
	picker.MoveDown()
	picker.MoveDown()
	if picker.SelectedValue() != "Rust" {
		t.Errorf("Expected the selection clamped at the bottom, got %s", picker.SelectedValue())
	}
}

func TestFacetPickerQueryRanksPrefixFirst(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Terraform", "Raft", "Go"}, nil)

	picker.UpdateInput(keyMsg("r"))
	picker.UpdateInput(keyMsg("a"))

	if picker.FilteredCount() != 2 {
		t.Fatalf("Expected 2 matches for 'ra', got %d", picker.FilteredCount())
	}
	if picker.SelectedValue() != "Raft" {
		t.Errorf("Expected the prefix match ranked first, got %s", picker.SelectedValue())
	}
}

func TestFacetPickerSelectionSurvivesNarrowing(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Airflow", "Figma", "Go"}, nil)
	picker.MoveDown()
	picker.MoveDown()

	// Narrowing below the cursor pulls the selection back in bounds.
	picker.UpdateInput(keyMsg("f"))
	if picker.SelectedValue() == "" {
		t.Error("Expected a selection after narrowing")
	}
	if picker.selectedIndex >= picker.FilteredCount() {
		t.Errorf("Selection out of bounds: index %d of %d", picker.selectedIndex, picker.FilteredCount())
	}
}

func TestFacetPickerEmptyVocabulary(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", nil, nil)

	if picker.SelectedValue() != "" {
		t.Errorf("Expected no selection in an empty vocabulary, got %q", picker.SelectedValue())
	}
	picker.MoveDown()
	picker.MoveUp()
	if picker.SelectedValue() != "" {
		t.Error("Navigation on an empty vocabulary should stay empty")
	}
}

func TestFacetPickerSetActiveRefreshesMarkers(t *testing.T) {
	picker := NewFacetPickerModel(Theme{})
	picker.Open("Filter by Skill", []string{"Go", "Rust"}, nil)
	if picker.ActiveCount() != 0 {
		t.Fatalf("Expected no active values, got %d", picker.ActiveCount())
	}

	picker.SetActive([]string{"Go", "Rust"})
	if picker.ActiveCount() != 2 {
		t.Errorf("Expected 2 active values, got %d", picker.ActiveCount())
	}

	picker.SetActive(nil)
	if picker.ActiveCount() != 0 {
		t.Errorf("Expected the markers cleared, got %d", picker.ActiveCount())
	}
}

func TestFacetPickerViewShowsActiveCount(t *testing.T) {
	picker := NewFacetPickerModel(TestTheme())
	picker.Open("Filter by Skill", []string{"Go", "Rust"}, []string{"Go"})
	picker.SetSize(80, 24)

	out := picker.View()
	if !strings.Contains(out, "Filter by Skill") {
		t.Error("Expected the view to show the title")
	}
	if !strings.Contains(out, "1 active") {
		t.Error("Expected the view to show the active count")
	}
}
