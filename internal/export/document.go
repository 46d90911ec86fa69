package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/go-pdf/fpdf"
)

// DocumentTitle heads the flow document.
const DocumentTitle = "Mess Menu Submissions"

// documentFont is embedded so names and suggestions outside Latin-1 are
// written as UTF-8 text rather than transliterated.
//
//go:embed fonts/DejaVuSans.ttf
var documentFont []byte

const documentFamily = "DejaVuSans"

// RenderFlowDocument builds a PDF with a centered title and one text block
// per record. Page breaks are left to the PDF library.
func RenderFlowDocument(records []core.Submission) ([]byte, error) {
	return renderFlowDocument(records, true)
}

func renderFlowDocument(records []core.Submission, compress bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8FontFromBytes(documentFamily, "", documentFont)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}

	pdf.AddPage()
	pdf.SetFont(documentFamily, "", 16)
	pdf.CellFormat(0, 10, DocumentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(documentFamily, "", 12)
	for i, rec := range records {
		for _, line := range recordLines(i+1, rec) {
			pdf.MultiCell(0, 6, basicPlane(line), "", "L", false)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// basicPlane replaces runes above U+FFFF with U+FFFD. The PDF library
// indexes glyph widths by 16-bit code point.
func basicPlane(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return '\uFFFD'
		}
		return r
	}, s)
}

// recordLines returns the text block for the n-th record (1-based).
func recordLines(n int, s core.Submission) []string {
	return []string{
		fmt.Sprintf("%d. %s (%s)", n, s.StudentName, s.RegistrationNumber),
		"Block & Room: " + s.BlockAndRoom,
		fmt.Sprintf("Mess: %s (%s)", s.DiningMessName, s.MessType),
		"Suggestion: " + s.FoodItemSuggestion,
		fmt.Sprintf("Meal: %s, Feasibility: %s", s.MealType, s.FeasibilityForMassProduction),
		"Submitted: " + formatTime(s),
	}
}
