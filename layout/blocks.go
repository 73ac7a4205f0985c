package layout

// 内容区各版块。每个 draw* 方法接收当前游标并返回推进后的游标。

const (
	fromToHeight    = 30.0
	bodyHeight      = 125.0
	dateHeight      = 8.0
	signatureHeight = 18.0
	salutation      = "Respected sir/Madam"
)

// boxText 是框内的一段文字，相对框左上角偏移；wrapInset > 0 时按 框宽-wrapInset 折行。
type boxText struct {
	text      string
	style     textStyle
	dx, dy    float64
	wrapInset float64
}

// drawBox 描边一个矩形并在其中放置文字。
func (c *composer) drawBox(x, y, w, h float64, texts ...boxText) error {
	c.acc.appendBox(x, y, w, h)
	for _, t := range texts {
		maxWidth := 0.0
		if t.wrapInset > 0 {
			maxWidth = w - t.wrapInset
		}
		if err := c.acc.appendText(t.text, x+t.dx, y+t.dy, maxWidth, t.style); err != nil {
			return err
		}
	}
	return nil
}

func (c *composer) drawFromTo(cursor float64) (float64, error) {
	x := c.geo.ContentX()
	half := c.geo.ContentWidth() / 2
	boxes := []struct {
		label string
		text  string
		x     float64
	}{
		{"From", c.rec.From, x},
		{"To", c.rec.To, x + half},
	}
	for _, b := range boxes {
		err := c.drawBox(b.x, cursor, half, fromToHeight,
			boxText{text: b.label, style: bold9, dx: 3, dy: 5},
			boxText{text: b.text, style: regular8, dx: 3, dy: 11, wrapInset: 8},
		)
		if err != nil {
			return 0, err
		}
	}
	return cursor + fromToHeight + 1, nil
}

func (c *composer) drawSalutation(cursor float64) (float64, error) {
	if err := c.acc.appendText(salutation, c.geo.ContentX()+3, cursor, 0, regular9); err != nil {
		return 0, err
	}
	return cursor + 5, nil
}

// drawSubject 的推进固定为 8mm，多行主题会与正文框重叠。
func (c *composer) drawSubject(cursor float64) (float64, error) {
	x := c.geo.ContentX()
	if err := c.acc.appendText("Subject :", x+3, cursor, 0, bold9); err != nil {
		return 0, err
	}
	if err := c.acc.appendText(c.rec.Subject, x+20, cursor, c.geo.ContentWidth()-25, regular8); err != nil {
		return 0, err
	}
	return cursor + 8, nil
}

func (c *composer) drawBody(cursor float64) (float64, error) {
	err := c.drawBox(c.geo.ContentX(), cursor, c.geo.ContentWidth(), bodyHeight,
		boxText{text: c.rec.Body, style: regular8, dx: 4, dy: 6, wrapInset: 8},
	)
	if err != nil {
		return 0, err
	}
	return cursor + bodyHeight + 2, nil
}

func (c *composer) drawDate(cursor float64) (float64, error) {
	err := c.drawBox(c.geo.ContentX(), cursor, c.geo.ContentWidth()/2, dateHeight,
		boxText{text: "Date:", style: bold9, dx: 3, dy: 5.5},
		boxText{text: c.rec.Date, style: regular8, dx: 13, dy: 5.5},
	)
	if err != nil {
		return 0, err
	}
	return cursor + dateHeight + 1, nil
}

var signatureCaptions = [3][2]string{
	{"Remarks By HoD", "Dean/IQAC(if applicable)"},
	{"Remarks by Principal", "Remarks by Director(A&A)"},
	{"Office Use/ A.O", "CEO"},
}

// drawSignatures 绘制签字栏。它是最后一个版块，返回的游标（299mm）超出外框，仅用于调试。
func (c *composer) drawSignatures(cursor float64) (float64, error) {
	x := c.geo.ContentX()
	half := c.geo.ContentWidth() / 2
	y := cursor
	for _, row := range signatureCaptions {
		for i, caption := range row {
			err := c.drawBox(x+float64(i)*half, y, half, signatureHeight,
				boxText{text: caption, style: regular8, dx: 3, dy: 5},
			)
			if err != nil {
				return 0, err
			}
		}
		y += signatureHeight
	}
	return y, nil
}
