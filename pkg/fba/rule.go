package fba

import (
	"fmt"
	"strings"
)

// Rule is a compiled gene-reaction association: a boolean expression over
// gene ids combined with "and"/"or" and parentheses, e.g.
// "(b0001 and b0002) or b0903". A reaction whose rule evaluates to false
// under a genome's activation states carries no flux.
type Rule interface {
	// Eval reports whether the association is satisfied for the given
	// gene activation states. Genes missing from the map count as
	// inactive.
	Eval(active map[string]bool) bool
	// Genes returns every gene id referenced by the rule.
	Genes() []string
}

// ParseRule compiles a gene-reaction rule expression. The empty string
// yields a rule that is always satisfied, for reactions without any gene
// association.
func ParseRule(expr string) (Rule, error) {
	tokens := tokenizeRule(expr)
	if len(tokens) == 0 {
		return alwaysRule{}, nil
	}
	p := &ruleParser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("parse rule %q: %w", expr, err)
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("parse rule %q: unexpected token %q", expr, p.tokens[p.pos])
	}
	return node, nil
}

type alwaysRule struct{}

func (alwaysRule) Eval(map[string]bool) bool { return true }
func (alwaysRule) Genes() []string           { return nil }

type geneRule struct {
	id string
}

func (r geneRule) Eval(active map[string]bool) bool { return active[r.id] }
func (r geneRule) Genes() []string                  { return []string{r.id} }

type andRule struct {
	operands []Rule
}

func (r andRule) Eval(active map[string]bool) bool {
	for _, op := range r.operands {
		if !op.Eval(active) {
			return false
		}
	}
	return true
}

func (r andRule) Genes() []string { return collectGenes(r.operands) }

type orRule struct {
	operands []Rule
}

func (r orRule) Eval(active map[string]bool) bool {
	for _, op := range r.operands {
		if op.Eval(active) {
			return true
		}
	}
	return false
}

func (r orRule) Genes() []string { return collectGenes(r.operands) }

func collectGenes(operands []Rule) []string {
	seen := map[string]bool{}
	var out []string
	for _, op := range operands {
		for _, id := range op.Genes() {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func tokenizeRule(expr string) []string {
	expr = strings.ReplaceAll(expr, "(", " ( ")
	expr = strings.ReplaceAll(expr, ")", " ) ")
	return strings.Fields(expr)
}

type ruleParser struct {
	tokens []string
	pos    int
}

func (p *ruleParser) parseOr() (Rule, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Rule{first}
	for p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos], "or") {
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return orRule{operands: operands}, nil
}

func (p *ruleParser) parseAnd() (Rule, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	operands := []Rule{first}
	for p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos], "and") {
		p.pos++
		next, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return andRule{operands: operands}, nil
}

func (p *ruleParser) parseFactor() (Rule, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	token := p.tokens[p.pos]
	switch {
	case token == "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos] != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case token == ")":
		return nil, fmt.Errorf("unexpected closing parenthesis")
	case strings.EqualFold(token, "and") || strings.EqualFold(token, "or"):
		return nil, fmt.Errorf("unexpected operator %q", token)
	default:
		p.pos++
		return geneRule{id: token}, nil
	}
}
