package layout

import "time"

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。
// 坐标与尺寸统一为毫米（mm），原点在页面左上角；字号为 pt。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
	// Blocks 按绘制顺序记录每个版块占用的纵向区间，用于调试与测试。
	Blocks []BlockSpan `json:"blocks"`
	// Warnings 记录不影响出图的问题，例如 logo 加载失败。
	Warnings []string `json:"warnings,omitempty"`
}

// BlockSpan 描述一个版块开始时的游标与它推进的距离。
type BlockSpan struct {
	Name    string  `json:"name"`
	Top     float64 `json:"top"`
	Advance float64 `json:"advance"`
}

// End 返回版块结束后的游标位置。
func (b BlockSpan) End() float64 { return b.Top + b.Advance }

// ResourceSet 记录页面引用到的字体与图片。
type ResourceSet struct {
	Fonts  map[string]FontResource  `json:"fonts"`
	Images map[string]ImageResource `json:"images"`
}

// FontResource 描述一个字重。Family 是后端无关的族名，Style 使用 "" / "B" 两种取值。
type FontResource struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Bold 判断该字体是否为粗体。
func (f FontResource) Bold() bool { return f.Style == "B" }

// ImageResource 是已解码校验过的栅格图片，Data 为可直接嵌入 PDF 的 PNG/JPEG 字节。
type ImageResource struct {
	Name        string `json:"name"`
	Format      string `json:"format"` // png | jpeg
	Data        []byte `json:"-"`
	PixelWidth  int    `json:"pixelWidth"`
	PixelHeight int    `json:"pixelHeight"`
}

// LogoResult 是 logo 加载的结果：要么有图片，要么有错误，布局阶段据此决定是否绘制。
type LogoResult struct {
	Image *ImageResource
	Err   error
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Black 是模板中所有线条与文字的颜色。
var Black = Color{}

// Page 记录页面尺寸与可以直接渲染的元素。
type Page struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Texts  []TextBox  `json:"texts"`
	Images []ImageBox `json:"images"`
	Lines  []Line     `json:"lines,omitempty"`
	Rects  []Rect     `json:"rects,omitempty"`
}

// TextBox 表示一个已经排好坐标的文本块。Y 为首行基线，后续行按 LineHeight 下移。
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width,omitempty"` // 折行宽度，0 表示不折行
	LineHeight float64    `json:"lineHeight"`
	Font       string     `json:"font"`
	FontSize   float64    `json:"fontSize"` // pt
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
	Align      string     `json:"align,omitempty"`
}

// TextLine 表示排版后的一行文本及其基线。
type TextLine struct {
	Content  string  `json:"content"`
	Width    float64 `json:"width"`
	Baseline float64 `json:"baseline"`
}

// ImageBox 引用 ResourceSet.Images 中的图片并给出绘制矩形。
type ImageBox struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm）
}

// Rect 表示一个只描边的矩形。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Subject  string    `json:"subject"`
	Creator  string    `json:"creator"`
	Keywords []string  `json:"keywords"`
	Created  time.Time `json:"created"`
}
