package fba

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRuleEval(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		active map[string]bool
		want   bool
	}{
		{"empty rule always holds", "", nil, true},
		{"single gene on", "gA", map[string]bool{"gA": true}, true},
		{"single gene off", "gA", map[string]bool{}, false},
		{"and both on", "gA and gB", map[string]bool{"gA": true, "gB": true}, true},
		{"and one off", "gA and gB", map[string]bool{"gA": true}, false},
		{"or one on", "gA or gB", map[string]bool{"gB": true}, true},
		{"or both off", "gA or gB", map[string]bool{}, false},
		{"and binds tighter than or", "gA and gB or gC", map[string]bool{"gC": true}, true},
		{"parens override precedence", "gA and (gB or gC)", map[string]bool{"gA": true, "gC": true}, true},
		{"parens override precedence, unmet", "gA and (gB or gC)", map[string]bool{"gC": true}, false},
		{"case-insensitive operators", "gA AND gB", map[string]bool{"gA": true, "gB": true}, true},
		{"nested groups", "((gA or gB) and (gC or gD))", map[string]bool{"gB": true, "gD": true}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := ParseRule(tc.expr)
			if err != nil {
				t.Fatal(err)
			}
			if got := rule.Eval(tc.active); got != tc.want {
				t.Errorf("Eval(%q, %v) = %v, want %v", tc.expr, tc.active, got, tc.want)
			}
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	exprs := []string{
		"gA and",
		"or gA",
		"(gA",
		"gA)",
		"gA gB",
		"gA and and gB",
		"()",
	}
	for _, expr := range exprs {
		if _, err := ParseRule(expr); err == nil {
			t.Errorf("ParseRule(%q) succeeded, expected error", expr)
		}
	}
}

func TestRuleGenes(t *testing.T) {
	rule, err := ParseRule("(gA and gB) or (gA and gC)")
	if err != nil {
		t.Fatal(err)
	}
	got := rule.Genes()
	sort.Strings(got)
	if diff := cmp.Diff([]string{"gA", "gB", "gC"}, got); diff != "" {
		t.Errorf("gene set mismatch (-want +got):\n%s", diff)
	}
}
