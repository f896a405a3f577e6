// Package labels renders printable putaway labels as PDF.
package labels

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	receivingapp "github.com/omnideploy/backend/internal/application/receiving"
	qrcode "github.com/skip2/go-qrcode"
)

// Layout holds the physical label geometry in millimeters
type Layout struct {
	Width  float64
	Height float64
	Margin float64
}

// DefaultLayout returns the 100x60mm thermal label stock the floor printers use
func DefaultLayout() Layout {
	return Layout{Width: 100, Height: 60, Margin: 4}
}

// Renderer renders putaway labels
type Renderer struct {
	layout Layout
}

// NewRenderer creates a label renderer with the default layout
func NewRenderer() *Renderer {
	return &Renderer{layout: DefaultLayout()}
}

// NewRendererWithLayout creates a label renderer with a custom layout
func NewRendererWithLayout(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Render produces a single-page PDF label for one physical unit.
// The QR code encodes the barcode (the truck item id) so a handheld
// scanner resolves the unit back to its receiving history.
func (r *Renderer) Render(label *receivingapp.LabelData) ([]byte, error) {
	if label == nil {
		return nil, fmt.Errorf("label data is required")
	}
	if label.Barcode == "" {
		return nil, fmt.Errorf("label barcode is required")
	}

	layout := r.layout
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: layout.Width, Ht: layout.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	x := layout.Margin
	textWidth := layout.Width - 2*layout.Margin

	// Header: company left, print timestamp right
	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(x, layout.Margin)
	pdf.CellFormat(textWidth/2, 5, label.CompanyName, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(textWidth/2, 5, label.PrintedAt.Format("2006-01-02 15:04"), "", 0, "R", false, 0, "")

	// Customer and item description
	pdf.SetFont("Arial", "", 9)
	pdf.SetXY(x, layout.Margin+7)
	pdf.CellFormat(textWidth, 4, label.CustomerName, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(x, layout.Margin+12)
	pdf.CellFormat(textWidth, 4, label.Description, "", 0, "L", false, 0, "")

	// Storage coordinate, the part the shelver reads first
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(x, layout.Margin+19)
	coordinate := fmt.Sprintf("%s-%s-%s-%s", label.Aisle, label.Bay, label.Level, label.Position)
	pdf.CellFormat(textWidth*0.6, 8, coordinate, "", 0, "L", false, 0, "")

	// QR code bottom right
	qrPng, err := qrcode.Encode(label.Barcode, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode: %w", err)
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("barcode", imgOptions, bytes.NewReader(qrPng))

	qrSize := layout.Height - layout.Margin*2 - 22
	qrX := layout.Width - layout.Margin - qrSize
	qrY := layout.Height - layout.Margin - qrSize
	pdf.ImageOptions("barcode", qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

	// Unit key below the coordinate for manual lookup
	pdf.SetFont("Arial", "", 7)
	pdf.SetXY(x, layout.Height-layout.Margin-4)
	pdf.CellFormat(textWidth*0.6, 4, label.UnitKey, "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render label: %w", err)
	}
	return buf.Bytes(), nil
}
