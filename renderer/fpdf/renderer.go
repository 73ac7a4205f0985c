// Package fpdfrenderer 使用 go-pdf/fpdf 的核心 Helvetica 字体输出 PDF，
// 字宽来自 PDF 标准字体度量，无需嵌入字体文件。
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"

	"github.com/ByLCY/facultyletter/layout"
	"github.com/ByLCY/facultyletter/renderer"
)

// Renderer draws layout results with github.com/go-pdf/fpdf.
type Renderer struct {
	mu      sync.Mutex
	measure *fpdf.Fpdf
	// cp1252 编码转换，核心字体只支持单字节编码
	translate func(string) string
}

var _ renderer.Backend = (*Renderer)(nil)

// NewRenderer creates an fpdf renderer.
func NewRenderer() *Renderer {
	m := newDocument(210, 297)
	return &Renderer{
		measure:   m,
		translate: m.UnicodeTranslatorFromDescriptor(""),
	}
}

func newDocument(width, height float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// TextWidth 实现 layout.Typesetter，返回毫米宽度。
func (r *Renderer) TextWidth(content string, font layout.FontResource, sizePt float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.measure.SetFont(fontFamily(font), font.Style, sizePt)
	w := r.measure.GetStringWidth(r.translate(content))
	if err := r.measure.Error(); err != nil {
		return 0, fmt.Errorf("测量文本宽度失败: %w", err)
	}
	return w, nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := result.Pages[0]
	pdf := newDocument(first.Width, first.Height)
	applyMeta(pdf, result.Meta)

	for name, img := range result.Resources.Images {
		pdf.RegisterImageOptionsReader(name, imageOptions(img), bytes.NewReader(img.Data))
	}

	for _, page := range result.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		if err := r.drawPage(pdf, page, result.Resources); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
	}
}

func (r *Renderer) drawPage(pdf *fpdf.Fpdf, page layout.Page, resources layout.ResourceSet) error {
	for _, rc := range page.Rects {
		pdf.SetDrawColor(rc.StrokeColor.R, rc.StrokeColor.G, rc.StrokeColor.B)
		pdf.SetLineWidth(rc.StrokeWidth)
		pdf.Rect(rc.X, rc.Y, rc.Width, rc.Height, "D")
	}
	for _, ln := range page.Lines {
		pdf.SetDrawColor(ln.Color.R, ln.Color.G, ln.Color.B)
		pdf.SetLineWidth(ln.Width)
		pdf.Line(ln.X1, ln.Y1, ln.X2, ln.Y2)
	}
	for _, box := range page.Images {
		img, ok := resources.Images[box.Name]
		if !ok {
			return fmt.Errorf("找不到图片资源 %s", box.Name)
		}
		pdf.ImageOptions(box.Name, box.X, box.Y, box.Width, box.Height, false, imageOptions(img), 0, "")
	}
	for _, tb := range page.Texts {
		font, ok := resources.Fonts[tb.Font]
		if !ok {
			return fmt.Errorf("字体 %s 未定义", tb.Font)
		}
		pdf.SetFont(fontFamily(font), font.Style, tb.FontSize)
		pdf.SetTextColor(tb.Color.R, tb.Color.G, tb.Color.B)
		for _, line := range tb.Lines {
			if line.Content == "" {
				continue
			}
			pdf.Text(tb.X, line.Baseline, r.translate(line.Content))
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("绘制页面失败: %w", err)
	}
	return nil
}

func imageOptions(img layout.ImageResource) fpdf.ImageOptions {
	return fpdf.ImageOptions{ImageType: strings.ToUpper(img.Format), ReadDpi: false}
}

func fontFamily(font layout.FontResource) string {
	if font.Family == "" {
		return "Helvetica"
	}
	return font.Family
}
