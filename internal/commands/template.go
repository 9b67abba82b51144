package commands

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var templateFuncs = sprig.TxtFuncMap()

// parsedTemplates caches templates by source text. Definitions are parsed
// when registered and then expanded on every invocation.
var parsedTemplates sync.Map

func parseTemplate(text string) (*template.Template, error) {
	if t, ok := parsedTemplates.Load(text); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("command").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	actual, _ := parsedTemplates.LoadOrStore(text, t)
	return actual.(*template.Template), nil
}

// ExpandTemplate executes text against data. Text without actions is
// returned unchanged.
func ExpandTemplate(text string, data any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	t, err := parseTemplate(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return sb.String(), nil
}

func checkTemplate(text string) error {
	_, err := parseTemplate(text)
	return err
}
