package exports

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"

	"portfolio/infrastructure/markdown"
	"portfolio/models"
)

const (
	pageMargin     = 15.0
	qrSize         = 28.0
	qrPixels       = 256
	descriptionMax = 600
)

// RenderPortfolioPDF prints a cover page, one block per project and the
// certificate list.
func RenderPortfolioPDF(p Portfolio) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(strings.TrimSpace(p.Profile.Name+" Portfolio"), true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if err := addCover(pdf, tr, p); err != nil {
		return nil, err
	}
	if len(p.Projects) > 0 {
		pdf.AddPage()
		heading(pdf, "Projects")
		for i, project := range p.Projects {
			if err := addProject(pdf, tr, project, i); err != nil {
				return nil, err
			}
		}
	}
	if len(p.Certificates) > 0 {
		pdf.AddPage()
		heading(pdf, "Certificates")
		for i, cert := range p.Certificates {
			if err := addCertificate(pdf, tr, cert, i); err != nil {
				return nil, err
			}
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func addCover(pdf *gofpdf.Fpdf, tr func(string) string, p Portfolio) error {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	name := strings.TrimSpace(p.Profile.Name)
	if name == "" {
		name = "Portfolio"
	}
	pdf.SetY(60)
	size := fitFontSizeForWidth(pdf, "Helvetica", "B", 36, 18, tr(name), contentW)
	pdf.SetFont("Helvetica", "B", size)
	pdf.CellFormat(0, 16, tr(name), "", 1, "C", false, 0, "")

	if len(p.Profile.Roles) > 0 {
		pdf.SetFont("Helvetica", "", 16)
		pdf.CellFormat(0, 10, tr(strings.Join(p.Profile.Roles, " | ")), "", 1, "C", false, 0, "")
	}
	if p.Profile.Tagline != "" {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.MultiCell(0, 6, tr(p.Profile.Tagline), "", "C", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{p.Profile.Email, p.Profile.GitHub, p.Profile.LinkedIn, p.Profile.Location} {
		if strings.TrimSpace(line) != "" {
			pdf.CellFormat(0, 6, tr(line), "", 1, "C", false, 0, "")
		}
	}

	if p.SiteURL != "" {
		const coverQR = 45.0
		if err := placeQR(pdf, "qr-site", p.SiteURL, (pageW-coverQR)/2, pdf.GetY()+10, coverQR); err != nil {
			return err
		}
		pdf.SetY(pdf.GetY() + 10 + coverQR + 2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, tr(p.SiteURL), "", 1, "C", false, 0, "")
	}

	if !p.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 8, "Generated "+p.GeneratedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	return nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, text, "B", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// ensureSpace starts a new page when fewer than h millimetres remain.
func ensureSpace(pdf *gofpdf.Fpdf, h float64) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-pageMargin {
		pdf.AddPage()
	}
}

func projectLink(p models.Project) string {
	if strings.TrimSpace(p.GitHubURL) != "" {
		return strings.TrimSpace(p.GitHubURL)
	}
	return strings.TrimSpace(p.LiveURL)
}

func dateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " to present"
	}
	return start + " to " + end
}

func addProject(pdf *gofpdf.Fpdf, tr func(string) string, p models.Project, index int) error {
	ensureSpace(pdf, qrSize+12)
	pageW, _ := pdf.GetPageSize()
	top, startPage := pdf.GetY(), pdf.PageNo()
	textW := pageW - 2*pageMargin - qrSize - 4

	link := projectLink(p)
	if link != "" {
		if err := placeQR(pdf, fmt.Sprintf("qr-project-%d", index), link, pageW-pageMargin-qrSize, top, qrSize); err != nil {
			return err
		}
	}

	pdf.SetXY(pageMargin, top)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(textW, 7, tr(p.Title), "", "L", false)

	kind := "Solo project"
	if p.Kind() == models.ProjectTypeTeam {
		kind = "Team project"
	}
	if dates := dateRange(p.StartDate, p.EndDate); dates != "" {
		kind += ", " + dates
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(textW, 5, tr(kind), "", "L", false)
	if len(p.Technologies) > 0 {
		pdf.MultiCell(textW, 5, tr(strings.Join(p.Technologies, ", ")), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 11)
	if p.Overview != "" {
		pdf.MultiCell(textW, 5.5, tr(p.Overview), "", "L", false)
	}
	if p.Description != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(textW, 5, tr(markdown.Truncate(p.Description, descriptionMax)), "", "L", false)
	}
	if link != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 70, 160)
		pdf.MultiCell(textW, 4.5, tr(link), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	bottom := pdf.GetY()
	if link != "" && pdf.PageNo() == startPage && bottom < top+qrSize {
		bottom = top + qrSize
	}
	pdf.SetY(bottom + 6)
	return nil
}

func addCertificate(pdf *gofpdf.Fpdf, tr func(string) string, c models.Certificate, index int) error {
	const rowH = 24.0
	ensureSpace(pdf, rowH+4)
	pageW, _ := pdf.GetPageSize()
	top, startPage := pdf.GetY(), pdf.PageNo()
	textW := pageW - 2*pageMargin - rowH - 4

	if c.CredentialURL != "" {
		if err := placeQR(pdf, fmt.Sprintf("qr-certificate-%d", index), c.CredentialURL, pageW-pageMargin-rowH, top, rowH); err != nil {
			return err
		}
	}

	pdf.SetXY(pageMargin, top)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(textW, 6, tr(c.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	line := c.Issuer
	if c.IssueDate != "" {
		line += ", issued " + c.IssueDate
	}
	pdf.MultiCell(textW, 5, tr(line), "", "L", false)
	if c.CredentialID != "" {
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(textW, 5, tr("Credential ID: "+c.CredentialID), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	bottom := pdf.GetY()
	if c.CredentialURL != "" && pdf.PageNo() == startPage && bottom < top+rowH {
		bottom = top + rowH
	}
	pdf.SetY(bottom + 4)
	return nil
}

func placeQR(pdf *gofpdf.Fpdf, name, content string, x, y, size float64) error {
	qrPNG, err := renderQRPNG(content, qrPixels)
	if err != nil {
		return fmt.Errorf("qr for %s: %w", name, err)
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(qrPNG))
	pdf.ImageOptions(name, x, y, size, size, false, opt, 0, "")
	return pdf.Error()
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, min float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return min
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > min && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderQRPNG(value string, pixels int) ([]byte, error) {
	code, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, pixels, pixels)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var qrPNG bytes.Buffer
	if err := png.Encode(&qrPNG, normalized); err != nil {
		return nil, err
	}
	return qrPNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
