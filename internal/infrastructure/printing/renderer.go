// Package printing renders shop documents (sales receipts, customer
// statements, stock reports) to PDF via headless Chrome.
package printing

import (
	"context"
	"time"
)

// PaperSize identifies the output paper dimensions.
type PaperSize string

const (
	PaperSizeA4          PaperSize = "A4"           // 210mm x 297mm
	PaperSizeReceipt80MM PaperSize = "RECEIPT_80MM" // 80mm thermal roll
)

// IsValid checks if the PaperSize is a known value.
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeReceipt80MM:
		return true
	}
	return false
}

// Dimensions returns the paper dimensions in millimeters (width, height).
// Thermal roll paper has variable height, reported as 0.
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeReceipt80MM:
		return 80, 0
	default:
		return 210, 297
	}
}

// IsReceipt reports whether the paper is continuous thermal roll.
func (p PaperSize) IsReceipt() bool {
	return p == PaperSizeReceipt80MM
}

// Orientation defines the page orientation.
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// Margins holds page margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns the standard A4 document margins.
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 12, Bottom: 15, Left: 12}
}

// ReceiptMargins returns the slim margins used for thermal receipts.
func ReceiptMargins() Margins {
	return Margins{Top: 3, Right: 3, Bottom: 3, Left: 3}
}

// RenderRequest contains the parameters for rendering HTML to PDF.
type RenderRequest struct {
	// HTML content to render. Fragments are wrapped into a full document.
	HTML string
	// PaperSize defines the output paper dimensions.
	PaperSize PaperSize
	// Orientation defines portrait or landscape.
	Orientation Orientation
	// Margins in millimeters.
	Margins Margins
	// Title for the PDF document metadata.
	Title string
	// Timeout overrides the renderer's default timeout.
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering.
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer converts HTML content into a PDF document.
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Error codes for rendering failures.
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeTemplateMissing  = "TEMPLATE_MISSING"
)

// RenderError represents an error during document rendering.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
