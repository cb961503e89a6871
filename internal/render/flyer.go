package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"leadagent/internal/config"
	agenterrors "leadagent/internal/errors"
	"leadagent/internal/logging"
)

// FlyerRenderer turns a title plus semi-structured body content into a
// branded, paginated PDF under <assetRoot>/flyers. Artifacts are addressed by
// their public relative path and overwritten on filename collision.
type FlyerRenderer struct {
	assetRoot string
	logger    logging.Logger
}

// NewFlyerRenderer returns a renderer writing under assetRoot (usually the
// statically served directory).
func NewFlyerRenderer(assetRoot string) *FlyerRenderer {
	return &FlyerRenderer{
		assetRoot: assetRoot,
		logger:    logging.NewComponentLogger("FlyerRenderer"),
	}
}

// SanitizeFilename restricts a caller-supplied filename to alphanumerics,
// space, dot and underscore, and forces the .pdf extension.
func SanitizeFilename(filename string) string {
	var sb strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '.', r == '_':
			sb.WriteRune(r)
		}
	}
	name := strings.TrimSpace(sb.String())
	name = strings.TrimSuffix(name, ".")
	if name == "" || name == "pdf" {
		name = "flyer.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// Render builds the flyer document and returns its public relative path.
// Branding (byline and footer) comes from the same configuration snapshot the
// rest of the invocation uses.
func (r *FlyerRenderer) Render(title, content, filename string, snap config.Snapshot) (string, error) {
	name := SanitizeFilename(filename)
	dir := filepath.Join(r.assetRoot, "flyers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &agenterrors.RenderError{Filename: name, Err: err}
	}
	path := filepath.Join(dir, name)

	company := snap.CompanyName()

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Centered title and byline.
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 11, tr(title), "", "C", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr("Brought to you by "+company), "", "C", false)
	pdf.Ln(8)

	for _, block := range ParseBlocks(content) {
		r.writeBlock(pdf, tr, block)
	}

	// Footer.
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Contact us via our Chat Agent. © %s", company)), "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &agenterrors.RenderError{Filename: name, Err: err}
	}

	rel := "/" + filepath.ToSlash(filepath.Join(filepath.Base(r.assetRoot), "flyers", name))
	r.logger.Info("rendered flyer %s", rel)
	return rel, nil
}

func (r *FlyerRenderer) writeBlock(pdf *fpdf.Fpdf, tr func(string) string, block Block) {
	switch block.Kind {
	case Heading:
		size := headingSize(block.Level)
		pdf.SetFont("Helvetica", "B", size)
		pdf.SetTextColor(0, 0, 0)
		writeInlinePDF(pdf, tr, block.Text, size*0.5)
		pdf.Ln(3)

	case List:
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		for i, item := range block.Items {
			marker := "-  "
			if block.Ordered {
				marker = fmt.Sprintf("%d.  ", i+1)
			}
			pdf.SetX(26)
			pdf.Write(5.5, tr(marker))
			writeInlinePDF(pdf, tr, item, 5.5)
		}
		pdf.Ln(4)

	case Image:
		r.writeImage(pdf, block)

	default:
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		writeInlinePDF(pdf, tr, block.Text, 5.5)
		pdf.Ln(4)
	}
}

// writeImage embeds a local image when the source resolves to an existing
// file; remote or missing sources are skipped rather than failing the render.
func (r *FlyerRenderer) writeImage(pdf *fpdf.Fpdf, block Block) {
	src := strings.TrimPrefix(block.Src, "/")
	if src == "" {
		return
	}
	if _, err := os.Stat(src); err != nil {
		r.logger.Warn("skipping unavailable image %q", block.Src)
		return
	}
	width, _ := strconv.ParseFloat(block.Width, 64)
	height, _ := strconv.ParseFloat(block.Height, 64)
	// Attribute values are pixels; the page works in millimeters.
	const pxToMM = 25.4 / 96
	opts := fpdf.ImageOptions{ReadDpi: true, AllowNegativePosition: false}
	pdf.ImageOptions(src, pdf.GetX(), pdf.GetY(), width*pxToMM, height*pxToMM, true, opts, 0, "")
	pdf.Ln(4)
}

// The basic HTML writer does not decode entities, so the escaping applied
// during block parsing is undone before writing.
var entityDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#34;", `"`,
)

// writeInlinePDF renders a restricted inline-HTML string (b, i, u, br) and
// terminates the line.
func writeInlinePDF(pdf *fpdf.Fpdf, tr func(string) string, text string, lineHt float64) {
	html := pdf.HTMLBasicNew()
	html.Write(lineHt, tr(entityDecoder.Replace(text)))
	pdf.Ln(lineHt)
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 18
	case 2:
		return 16
	case 3:
		return 14
	case 4:
		return 13
	case 5:
		return 12
	default:
		return 11
	}
}
