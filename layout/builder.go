package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/facultyletter/letter"
)

// 字体资源名。
const (
	FontRegular = "Regular"
	FontBold    = "Bold"
)

// LogoImageName 是 logo 在 ResourceSet.Images 中的键。
const LogoImageName = "logo"

// DefaultFonts 返回模板使用的两个字重。Family 为 Helvetica，由各后端映射到实际字体。
func DefaultFonts() map[string]FontResource {
	return map[string]FontResource{
		FontRegular: {Name: FontRegular, Family: "Helvetica"},
		FontBold:    {Name: FontBold, Family: "Helvetica", Style: "B"},
	}
}

// textStyle 组合字重与字号（pt）。
type textStyle struct {
	font string
	size float64
}

var (
	bold12    = textStyle{FontBold, 12}
	bold11    = textStyle{FontBold, 11}
	bold9     = textStyle{FontBold, 9}
	regular10 = textStyle{FontRegular, 10}
	regular9  = textStyle{FontRegular, 9}
	regular8  = textStyle{FontRegular, 8}
)

// Build 把已校验的申请函记录排版为单页结果。Date 字段应已由调用方写入。
// 版块按外框、页眉、From/To、称呼、主题、正文、日期、签字栏的顺序绘制，游标依次传递。
func Build(rec letter.Record, opts BuildOptions) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	g := opts.Geometry
	if g.isZero() {
		g = A4Geometry()
	}

	res := ResourceSet{Fonts: DefaultFonts(), Images: map[string]ImageResource{}}
	c := &composer{
		geo:  g,
		rec:  rec,
		logo: opts.Logo,
		acc:  newPageAccumulator(g, res, NewMeasurer(opts.Typesetter)),
	}
	result := &Result{
		Resources: res,
		Meta:      collectMeta(rec, opts),
	}

	c.acc.appendRect(g.Border())

	cursor := g.Top()
	for _, step := range c.steps() {
		next, err := step.draw(cursor)
		if err != nil {
			return nil, fmt.Errorf("layout: 绘制 %s 失败: %w", step.name, err)
		}
		result.Blocks = append(result.Blocks, BlockSpan{Name: step.name, Top: cursor, Advance: next - cursor})
		cursor = next
	}

	result.Pages = []Page{c.acc.page}
	result.Warnings = c.warnings
	return result, nil
}

// composer 持有单次排版的上下文；游标不保存在这里，而是在各版块之间显式传递。
type composer struct {
	geo      Geometry
	rec      letter.Record
	logo     LogoResult
	acc      *pageAccumulator
	warnings []string
}

type blockStep struct {
	name string
	draw func(cursor float64) (float64, error)
}

func (c *composer) steps() []blockStep {
	return []blockStep{
		{"header", c.drawHeader},
		{"from-to", c.drawFromTo},
		{"salutation", c.drawSalutation},
		{"subject", c.drawSubject},
		{"body", c.drawBody},
		{"date", c.drawDate},
		{"signatures", c.drawSignatures},
	}
}

func collectMeta(rec letter.Record, opts BuildOptions) DocumentMeta {
	keywords := []string{"faculty request letter"}
	if d := strings.TrimSpace(rec.Department); d != "" {
		keywords = append(keywords, d)
	}
	return DocumentMeta{
		Title:    "Faculty Request Letter",
		Author:   firstLine(rec.From),
		Subject:  firstLine(rec.Subject),
		Creator:  "facultyletter",
		Keywords: keywords,
		Created:  opts.Created,
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// pageAccumulator 收集单页上的绘制元素，并负责文本的度量与折行。
type pageAccumulator struct {
	page     Page
	res      ResourceSet
	measurer *Measurer
}

func newPageAccumulator(g Geometry, res ResourceSet, m *Measurer) *pageAccumulator {
	return &pageAccumulator{
		page:     Page{Width: g.PageWidth, Height: g.PageHeight},
		res:      res,
		measurer: m,
	}
}

func (p *pageAccumulator) font(name string) (FontResource, error) {
	if f, ok := p.res.Fonts[name]; ok {
		return f, nil
	}
	return FontResource{}, fmt.Errorf("字体 %s 未定义", name)
}

// appendText 在 (x, y) 处放置文本，y 为首行基线。maxWidth > 0 时折行。
func (p *pageAccumulator) appendText(content string, x, y, maxWidth float64, st textStyle) error {
	font, err := p.font(st.font)
	if err != nil {
		return err
	}
	contents, err := p.measurer.Wrap(content, maxWidth, font, st.size)
	if err != nil {
		return err
	}
	step := LineStep(st.size)
	lines := make([]TextLine, 0, len(contents))
	for i, s := range contents {
		w, err := p.measurer.Width(s, font, st.size)
		if err != nil {
			return err
		}
		lines = append(lines, TextLine{Content: s, Width: w, Baseline: y + float64(i)*step})
	}
	p.page.Texts = append(p.page.Texts, TextBox{
		Content:    content,
		X:          x,
		Y:          y,
		Width:      maxWidth,
		LineHeight: step,
		Font:       st.font,
		FontSize:   st.size,
		Color:      Black,
		Lines:      lines,
	})
	return nil
}

// appendCentered 把单行文本在整页宽度内居中。
func (p *pageAccumulator) appendCentered(content string, y float64, st textStyle) error {
	font, err := p.font(st.font)
	if err != nil {
		return err
	}
	x, err := p.measurer.Center(content, p.page.Width, font, st.size)
	if err != nil {
		return err
	}
	if err := p.appendText(content, x, y, 0, st); err != nil {
		return err
	}
	p.page.Texts[len(p.page.Texts)-1].Align = "center"
	return nil
}

func (p *pageAccumulator) appendLine(x1, y1, x2, y2 float64) {
	p.page.Lines = append(p.page.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: Black, Width: ruleLineWidth})
}

func (p *pageAccumulator) appendRect(r Rect) {
	p.page.Rects = append(p.page.Rects, r)
}

func (p *pageAccumulator) appendBox(x, y, w, h float64) {
	p.appendRect(Rect{X: x, Y: y, Width: w, Height: h, StrokeColor: Black, StrokeWidth: ruleLineWidth})
}

func (p *pageAccumulator) appendImage(img ImageResource, x, y, w, h float64) {
	p.res.Images[img.Name] = img
	p.page.Images = append(p.page.Images, ImageBox{Name: img.Name, X: x, Y: y, Width: w, Height: h})
}
