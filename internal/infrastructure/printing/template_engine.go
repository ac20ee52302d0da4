package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML document templates with shop data.
// It uses html/template with helper functions for rupee and date formatting.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a template engine with the default helpers.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		// Money formatting
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Number formatting
		"formatQty": formatQty,

		// String utilities
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     titleCase,
		"trim":      strings.TrimSpace,
		"truncate":  truncate,
		"shortUUID": shortUUID,

		// Arithmetic over decimals
		"add": addDecimal,
		"sub": subDecimal,
		"mul": mulDecimal,

		"now":     time.Now,
		"default": defaultFunc,
	}
	return e
}

// Render parses and executes a named template against data.
func (e *TemplateEngine) Render(name, content string, data interface{}) (string, error) {
	return e.render(name, content, data, nil)
}

// RenderWithFuncs is Render with extra helpers layered over the defaults.
func (e *TemplateEngine) RenderWithFuncs(name, content string, data interface{}, extra template.FuncMap) (string, error) {
	return e.render(name, content, data, extra)
}

func (e *TemplateEngine) render(name, content string, data interface{}, extra template.FuncMap) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	if extra != nil {
		maps.Copy(funcMap, extra)
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template "+name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

// formatMoney formats a value as rupees with symbol.
// Example: 1234.56 -> "Rs 1,234.56"
func formatMoney(v interface{}) string {
	return "Rs " + formatMoneyRaw(v)
}

// formatMoneyRaw formats a value with thousand separators, no symbol.
// Example: 1234.56 -> "1,234.56"
func formatMoneyRaw(v interface{}) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return sign + result.String() + "." + decPart
}

// formatQty renders a decimal quantity without trailing zeros.
func formatQty(v interface{}) string {
	d := toDecimal(v)
	if d.IsInteger() {
		return fmt.Sprintf("%d", d.IntPart())
	}
	return d.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func shortUUID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return strings.ToUpper(s[:8])
	}
	return strings.ToUpper(s)
}

func addDecimal(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Add(toDecimal(b))
}

func subDecimal(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Sub(toDecimal(b))
}

func mulDecimal(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Mul(toDecimal(b))
}

func defaultFunc(def, v interface{}) interface{} {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok && s == "" {
		return def
	}
	return v
}

// toDecimal coerces common numeric types to decimal.Decimal.
func toDecimal(v interface{}) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case float64:
		return decimal.NewFromFloat(x)
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
