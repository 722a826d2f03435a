package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Knetic/govaluate"

	"devhome/internal/table"
)

type Criteria struct {
	Query    string // plain contains, or regex when written /.../
	UseRegex bool
	Field    string // when set, apply Query only to this field
	Expr     string // govaluate expression over the row fields
}

// ParseQuery splits the /regex/ form off user input.
func ParseQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	if len(q) > 2 && strings.HasPrefix(q, "/") && strings.HasSuffix(q, "/") {
		return q[1 : len(q)-1], true
	}
	return q, false
}

func (c Criteria) Active() bool {
	return c.Query != "" || strings.TrimSpace(c.Expr) != ""
}

func (c Criteria) String() string {
	parts := []string{}
	if c.Query != "" {
		q := c.Query
		if c.UseRegex {
			q = "/" + q + "/"
		}
		if c.Field != "" {
			q = c.Field + "~" + q
		}
		parts = append(parts, q)
	}
	if e := strings.TrimSpace(c.Expr); e != "" {
		parts = append(parts, "expr: "+e)
	}
	return strings.Join(parts, "  ")
}

type Evaluator struct {
	re   *regexp.Regexp
	expr *govaluate.EvaluableExpression
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	var re *regexp.Regexp
	var expr *govaluate.EvaluableExpression
	var err error
	if c.UseRegex && c.Query != "" {
		re, err = regexp.Compile(c.Query)
		if err != nil {
			return nil, fmt.Errorf("filter: bad regex: %w", err)
		}
	}
	if strings.TrimSpace(c.Expr) != "" {
		expr, err = govaluate.NewEvaluableExpression(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("filter: bad expression: %w", err)
		}
	}
	return &Evaluator{re: re, expr: expr}, nil
}

var errNotBool = errors.New("filter: expression did not yield a boolean")

func (e *Evaluator) Match(row table.Row, c Criteria) bool {
	if c.Query != "" {
		if !e.matchText(row, c) {
			return false
		}
	}
	if e.expr != nil {
		ok, err := e.Eval(row)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func (e *Evaluator) matchText(row table.Row, c Criteria) bool {
	var texts []string
	if c.Field != "" {
		if v, ok := row.Fields[c.Field]; ok {
			texts = append(texts, table.Stringify(v))
		}
	} else {
		for _, v := range row.Fields {
			texts = append(texts, table.Stringify(v))
		}
	}
	needle := strings.ToLower(c.Query)
	for _, s := range texts {
		if e.re != nil {
			if e.re.MatchString(s) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Eval runs the expression alone against a row.
func (e *Evaluator) Eval(row table.Row) (bool, error) {
	if e.expr == nil {
		return true, nil
	}
	params := make(map[string]any, len(row.Fields))
	for k, v := range row.Fields {
		params[k] = normalize(v)
	}
	result, err := e.expr.Evaluate(params)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errNotBool
	}
	return b, nil
}

// govaluate compares numbers as float64 only.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return v
}

// Apply keeps the rows that match, in order.
func Apply(rows []table.Row, c Criteria) ([]table.Row, error) {
	if !c.Active() {
		return rows, nil
	}
	ev, err := NewEvaluator(c)
	if err != nil {
		return nil, err
	}
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if ev.Match(r, c) {
			out = append(out, r)
		}
	}
	return out, nil
}
