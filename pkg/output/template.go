package output

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	expressionPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	variablePattern   = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_\.]*)\}`)
)

// TemplateEngine renders message templates.
// It supports both simple variable substitution (e.g., {name}) and expr
// expressions (e.g., {{offset + limit}}).
type TemplateEngine struct {
	mu sync.Mutex
	// Cache for compiled expr programs
	programCache map[string]*vm.Program
}

// NewTemplateEngine creates a new template engine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		programCache: make(map[string]*vm.Program),
	}
}

// Render renders a template string with the given data.
func (t *TemplateEngine) Render(template string, data map[string]any) (string, error) {
	if template == "" {
		return "", nil
	}

	if data == nil {
		data = make(map[string]any)
	}

	result, err := t.processExpressions(template, data)
	if err != nil {
		return "", err
	}

	return t.processVariables(result, data)
}

func (t *TemplateEngine) processExpressions(template string, data map[string]any) (string, error) {
	var lastErr error
	result := expressionPattern.ReplaceAllStringFunc(template, func(match string) string {
		expression := strings.TrimSpace(match[2 : len(match)-2])

		value, err := t.evaluateExpression(expression, data)
		if err != nil {
			lastErr = err
			return match
		}

		return fmt.Sprint(value)
	})

	if lastErr != nil {
		return "", fmt.Errorf("failed to evaluate expression: %w", lastErr)
	}

	return result, nil
}

func (t *TemplateEngine) processVariables(template string, data map[string]any) (string, error) {
	var lastErr error
	result := variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		varPath := match[1 : len(match)-1]

		value, err := resolveVariable(varPath, data)
		if err != nil {
			lastErr = err
			return match
		}

		return fmt.Sprint(value)
	})

	if lastErr != nil {
		return "", fmt.Errorf("failed to resolve variable: %w", lastErr)
	}

	return result, nil
}

func (t *TemplateEngine) evaluateExpression(expression string, data map[string]any) (any, error) {
	t.mu.Lock()
	program, ok := t.programCache[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.Env(data), expr.AllowUndefinedVariables())
		if err != nil {
			t.mu.Unlock()
			return nil, fmt.Errorf("failed to compile expression '%s': %w", expression, err)
		}
		t.programCache[expression] = program
	}
	t.mu.Unlock()

	result, err := expr.Run(program, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute expression '%s': %w", expression, err)
	}

	return result, nil
}

// resolveVariable resolves a variable path like "name" or "user.email".
func resolveVariable(path string, data map[string]any) (any, error) {
	var current any = data

	for _, part := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("variable '%s' not found", path)
			}
			current = val
		case map[string]string:
			val, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("variable '%s' not found", path)
			}
			current = val
		default:
			return nil, fmt.Errorf("cannot access field '%s' on non-map type", part)
		}
	}

	return current, nil
}

// Hint templates for paginated listings.
const (
	ShowingTemplate = "Showing {{offset + 1}}-{{offset + count}} of {total}"
	MoreTemplate    = "Use: {cmd} --limit {limit} --offset {{offset + limit}} for more"
)

var hints = NewTemplateEngine()

// PageHint holds the values of one page of a listing.
type PageHint struct {
	// Command is the command line prefix repeated in the hint, e.g. "feed"
	// or "user-posts alice".
	Command string
	Limit   int
	Offset  int
	Count   int
	Total   int
}

func (h PageHint) data() map[string]any {
	return map[string]any{
		"cmd":    h.Command,
		"limit":  h.Limit,
		"offset": h.Offset,
		"count":  h.Count,
		"total":  h.Total,
	}
}

// Showing renders "Showing a-b of total".
func (h PageHint) Showing() string {
	msg, err := hints.Render(ShowingTemplate, h.data())
	if err != nil {
		return fmt.Sprintf("Showing %d-%d of %d", h.Offset+1, h.Offset+h.Count, h.Total)
	}
	return msg
}

// More renders the command that fetches the next page.
func (h PageHint) More() string {
	msg, err := hints.Render(MoreTemplate, h.data())
	if err != nil {
		return fmt.Sprintf("Use: %s --limit %d --offset %d for more", h.Command, h.Limit, h.Offset+h.Limit)
	}
	return msg
}
