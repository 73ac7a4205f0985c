package layout

import (
	"fmt"
	"strings"
)

// Measurer 在 Typesetter 之上提供宽度、折行与居中计算，所有结果为毫米。
type Measurer struct {
	ts Typesetter
}

// NewMeasurer 基于排版后端创建 Measurer。
func NewMeasurer(ts Typesetter) *Measurer {
	return &Measurer{ts: ts}
}

// Width 返回单行文本在给定字体与字号下的宽度。
func (m *Measurer) Width(text string, font FontResource, sizePt float64) (float64, error) {
	if m == nil || m.ts == nil {
		return 0, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if text == "" {
		return 0, nil
	}
	w, err := m.ts.TextWidth(text, font, sizePt)
	if err != nil {
		return 0, fmt.Errorf("layout: 测量文本宽度失败: %w", err)
	}
	return w, nil
}

// Wrap 按换行符切分段落，再在空白处贪心折行，使每行宽度不超过 maxWidth。
// 单个词超过 maxWidth 时独占一行并允许溢出，不在词内拆分；空段落产生空行；
// maxWidth <= 0 时不折行，每个段落原样成为一行。
func (m *Measurer) Wrap(text string, maxWidth float64, font FontResource, sizePt float64) ([]string, error) {
	paragraphs := strings.Split(text, "\n")
	var lines []string
	for _, para := range paragraphs {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			w, err := m.Width(candidate, font, sizePt)
			if err != nil {
				return nil, err
			}
			if w <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines, nil
}

// Center 返回把文本在容器内水平居中所需的起始偏移。
func (m *Measurer) Center(text string, containerWidth float64, font FontResource, sizePt float64) (float64, error) {
	w, err := m.Width(text, font, sizePt)
	if err != nil {
		return 0, err
	}
	return (containerWidth - w) / 2, nil
}

// LineStep 返回多行文本相邻基线的间距（mm）。
func LineStep(sizePt float64) float64 {
	return DefaultLineHeight.Resolve(Pt(sizePt), UnitMM)
}
