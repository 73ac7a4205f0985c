package layout

import "fmt"

// 页眉文字与表头内容固定印在表格上。
const (
	institutionName    = "KGISL INSTITUTE OF TECHNOLOGY,"
	institutionAddress = "COIMBATORE -35, TN, INDIA"
	formTitle          = "FACULTY REQUEST LETTER"
)

const (
	logoWidth       = 20.0
	logoHeight      = 10.0
	headerRowHeight = 7.0
)

// headerCell 是表头的一个单元格；department 为真时内容取自记录。
type headerCell struct {
	text       string
	style      textStyle
	department bool
}

var headerRows = [3][3]headerCell{
	{{text: "ACADEMIC - FORMS", style: bold9}, {text: "Issue No / Date", style: regular8}, {text: "Doc. Ref.", style: regular8}},
	{{text: "FACULTY REQUEST LETTER", style: bold9}, {text: "01 / 19.08.2024", style: regular8}, {text: "KITE/ AC/FRL/ 76", style: regular8}},
	{{text: "ACADEMIC YEAR: 2024 - 2025", style: bold9}, {text: "Department", style: bold9}, {style: regular8, department: true}},
}

// drawHeader 绘制 logo、机构名、三行表头与表单标题，固定推进 52mm。
func (c *composer) drawHeader(cursor float64) (float64, error) {
	g := c.geo
	x := g.ContentX()
	y := cursor

	switch {
	case c.logo.Image != nil:
		img := *c.logo.Image
		img.Name = LogoImageName
		c.acc.appendImage(img, x, y, logoWidth, logoHeight)
	case c.logo.Err != nil:
		c.warnings = append(c.warnings, fmt.Sprintf("logo 未绘制: %v", c.logo.Err))
	}

	if err := c.acc.appendCentered(institutionName, y+4, bold12); err != nil {
		return 0, err
	}
	if err := c.acc.appendCentered(institutionAddress, y+9, regular10); err != nil {
		return 0, err
	}

	y += 13
	tableTop := y
	tableWidth := g.ContentWidth()
	col2X, col3X := ColumnSplits(x, tableWidth)
	columns := [3]float64{x, col2X, col3X}

	c.acc.appendLine(x, tableTop, x+tableWidth, tableTop)
	for _, row := range headerRows {
		y += headerRowHeight
		for i, cell := range row {
			text := cell.text
			if cell.department {
				text = c.rec.Department
			}
			if err := c.acc.appendText(text, columns[i]+2, y-2, 0, cell.style); err != nil {
				return 0, err
			}
		}
		c.acc.appendLine(x, y, x+tableWidth, y)
	}
	c.acc.appendLine(col2X, tableTop, col2X, y)
	c.acc.appendLine(col3X, tableTop, col3X, y)

	y += 10
	if err := c.acc.appendCentered(formTitle, y, bold11); err != nil {
		return 0, err
	}
	y += 8
	return y, nil
}
