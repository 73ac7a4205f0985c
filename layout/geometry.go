package layout

// Geometry 描述固定的页面几何：A4 纸、外框边距与内容区缩进。
type Geometry struct {
	PageWidth    float64 `json:"pageWidth"`
	PageHeight   float64 `json:"pageHeight"`
	BorderMargin float64 `json:"borderMargin"`
	ContentInset float64 `json:"contentInset"`
}

// 表头第二、三列的分割比例（相对表格宽度）。
const (
	column2Ratio = 0.65
	column3Ratio = 0.82
)

const (
	borderLineWidth = 0.5
	ruleLineWidth   = 0.4
)

// A4Geometry 返回申请函使用的页面几何。
func A4Geometry() Geometry {
	return Geometry{PageWidth: 210, PageHeight: 297, BorderMargin: 5, ContentInset: 8}
}

func (g Geometry) isZero() bool { return g == Geometry{} }

// ContentX 是内容区左边界。
func (g Geometry) ContentX() float64 { return g.BorderMargin + g.ContentInset }

// ContentWidth 是内容区宽度，左右对称缩进。
func (g Geometry) ContentWidth() float64 { return g.PageWidth - 2*g.ContentX() }

// Top 是游标的初始位置。
func (g Geometry) Top() float64 { return g.BorderMargin + g.ContentInset }

// Border 返回页面外框。
func (g Geometry) Border() Rect {
	return Rect{
		X:           g.BorderMargin,
		Y:           g.BorderMargin,
		Width:       g.PageWidth - 2*g.BorderMargin,
		Height:      g.PageHeight - 2*g.BorderMargin,
		StrokeColor: Black,
		StrokeWidth: borderLineWidth,
	}
}

// ColumnSplits 返回表头第二、三列的起始 x 坐标。
func ColumnSplits(tableStartX, tableWidth float64) (float64, float64) {
	return tableStartX + tableWidth*column2Ratio, tableStartX + tableWidth*column3Ratio
}
