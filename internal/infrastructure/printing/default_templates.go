package printing

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var templateFS embed.FS

// DocType identifies a printable shop document.
type DocType string

const (
	DocTypeReceipt     DocType = "RECEIPT"      // sales receipt, thermal roll
	DocTypeStatement   DocType = "STATEMENT"    // customer ledger statement
	DocTypeHistory     DocType = "HISTORY"      // customer transaction history
	DocTypeStoreReport DocType = "STORE_REPORT" // store stock movement report
)

// IsValid checks if the DocType is a known value.
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeReceipt, DocTypeStatement, DocTypeHistory, DocTypeStoreReport:
		return true
	}
	return false
}

func (d DocType) String() string { return string(d) }

// DocumentTemplate binds a document type to its layout and page setup.
type DocumentTemplate struct {
	DocType     DocType
	Name        string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	FilePath    string // path within the embedded FS
}

// DefaultTemplates returns the built-in template configurations.
func DefaultTemplates() []DocumentTemplate {
	return []DocumentTemplate{
		{
			DocType:     DocTypeReceipt,
			Name:        "Sales Receipt 80mm",
			PaperSize:   PaperSizeReceipt80MM,
			Orientation: OrientationPortrait,
			Margins:     ReceiptMargins(),
			FilePath:    "templates/receipt_80mm.html",
		},
		{
			DocType:     DocTypeStatement,
			Name:        "Customer Statement A4",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/statement_a4.html",
		},
		{
			DocType:     DocTypeHistory,
			Name:        "Customer Transaction History A4",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/history_a4.html",
		},
		{
			DocType:     DocTypeStoreReport,
			Name:        "Store Stock Report A4",
			PaperSize:   PaperSizeA4,
			Orientation: OrientationPortrait,
			Margins:     DefaultMargins(),
			FilePath:    "templates/store_report_a4.html",
		},
	}
}

// TemplateStore resolves document templates and their HTML sources.
// An optional override directory lets operators customize layouts
// without rebuilding; files there shadow the embedded ones by name.
type TemplateStore struct {
	overrideDir string
	byDocType   map[DocType]DocumentTemplate
}

// NewTemplateStore creates a template store. overrideDir may be empty.
func NewTemplateStore(overrideDir string) *TemplateStore {
	byDocType := make(map[DocType]DocumentTemplate)
	for _, t := range DefaultTemplates() {
		byDocType[t.DocType] = t
	}
	return &TemplateStore{overrideDir: overrideDir, byDocType: byDocType}
}

// Lookup returns the template configuration for a document type.
func (s *TemplateStore) Lookup(docType DocType) (DocumentTemplate, error) {
	t, ok := s.byDocType[docType]
	if !ok {
		return DocumentTemplate{}, NewRenderError(ErrCodeTemplateMissing,
			fmt.Sprintf("no template registered for document type %s", docType), nil)
	}
	return t, nil
}

// Content returns the HTML source for a document template.
func (s *TemplateStore) Content(docType DocType) (string, error) {
	t, err := s.Lookup(docType)
	if err != nil {
		return "", err
	}

	if s.overrideDir != "" {
		override := filepath.Join(s.overrideDir, filepath.Base(t.FilePath))
		if data, err := os.ReadFile(override); err == nil {
			return string(data), nil
		}
	}

	data, err := templateFS.ReadFile(t.FilePath)
	if err != nil {
		return "", NewRenderError(ErrCodeTemplateMissing,
			"embedded template not found: "+t.FilePath, err)
	}
	return string(data), nil
}
