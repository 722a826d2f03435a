package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"devhome/internal/table"
)

func defectRows() []table.Row {
	return table.IndexRows([]map[string]any{
		{"severity": "high", "file": "src/main.cpp", "line": 12, "message": "Null pointer dereference"},
		{"severity": "low", "file": "src/util.cpp", "line": 40, "message": "Variable 'x' is reassigned"},
		{"severity": "medium", "file": "lib/Drv/drv.c", "line": 7, "message": "Array index out of bounds"},
	})
}

func idx(rows []table.Row) []int {
	out := []int{}
	for _, r := range rows {
		out = append(out, r.Index)
	}
	return out
}

func TestApplyQuery(t *testing.T) {
	got, err := Apply(defectRows(), Criteria{Query: "POINTER"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{0}, idx(got)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestApplyFieldRegex(t *testing.T) {
	q, re := ParseQuery("/^src/")
	if !re || q != "^src" {
		t.Fatalf("ParseQuery: got %q %v", q, re)
	}
	got, err := Apply(defectRows(), Criteria{Query: q, UseRegex: re, Field: "file"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, idx(got)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestApplyExpression(t *testing.T) {
	got, err := Apply(defectRows(), Criteria{Expr: `severity != "low" && line < 10`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2}, idx(got)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestBadExpression(t *testing.T) {
	if _, err := NewEvaluator(Criteria{Expr: "severity =="}); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewEvaluator(Criteria{Query: "(", UseRegex: true}); err == nil {
		t.Fatalf("expected regex error")
	}
}

func TestNonBoolExpressionRejectsRow(t *testing.T) {
	ev, err := NewEvaluator(Criteria{Expr: "line + 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ev.Eval(defectRows()[0]); err == nil {
		t.Fatalf("expected non-bool error")
	}
}
