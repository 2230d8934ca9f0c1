// Package filter narrows API response bodies with JMESPath expressions
// (--filter then --query).
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Pipeline is a compiled filter/query pair. The zero value passes bodies through.
type Pipeline struct {
	steps []step
}

type step struct {
	kind string // "filter" or "query"
	expr *jmespath.JMESPath
}

// Compile checks both expressions. Either may be empty.
// Filter narrows results (e.g., data[?phone!=`null`]);
// query selects fields (e.g., data[].phone).
func Compile(filter, query string) (*Pipeline, error) {
	p := &Pipeline{}
	for _, s := range []struct{ kind, src string }{{"filter", filter}, {"query", query}} {
		if s.src == "" {
			continue
		}
		expr, err := jmespath.Compile(s.src)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", s.kind, s.src, err)
		}
		p.steps = append(p.steps, step{kind: s.kind, expr: expr})
	}
	return p, nil
}

// Empty reports whether the pipeline leaves bodies untouched
func (p *Pipeline) Empty() bool {
	return p == nil || len(p.steps) == 0
}

// Apply runs the pipeline over a JSON body and returns indented JSON
func (p *Pipeline) Apply(body string) (string, error) {
	if p.Empty() {
		return body, nil
	}

	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	for _, s := range p.steps {
		result, err := s.expr.Search(data)
		if err != nil {
			return "", fmt.Errorf("failed to apply %s: %w", s.kind, err)
		}
		data = result
	}

	if data == nil {
		return "null", nil
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(out), nil
}

// Apply compiles filter and query and runs them over body
func Apply(body, filter, query string) (string, error) {
	p, err := Compile(filter, query)
	if err != nil {
		return "", err
	}
	return p.Apply(body)
}
