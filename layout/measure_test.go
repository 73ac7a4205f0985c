package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// stubTypesetter 是一个最小实现，仅用于测试：每个字符宽度为 字号*0.2 mm，粗体与常规相同。
type stubTypesetter struct{}

func (stubTypesetter) TextWidth(content string, font FontResource, sizePt float64) (float64, error) {
	return float64(utf8.RuneCountInString(content)) * sizePt * 0.2, nil
}

type failingTypesetter struct{ err error }

func (f failingTypesetter) TextWidth(string, FontResource, float64) (float64, error) {
	return 0, f.err
}

var testFont = FontResource{Name: FontRegular, Family: "Helvetica"}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// 字号 10 时每个字符 2mm。
func TestWrap(t *testing.T) {
	m := NewMeasurer(stubTypesetter{})
	cases := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits", "aa bb", 10, []string{"aa bb"}},
		{"greedy", "aa bb cc", 10, []string{"aa bb", "cc"}},
		{"collapses whitespace", "  a   b  ", 100, []string{"a b"}},
		{"long word overflows alone", "a verylongword b", 10, []string{"a", "verylongword", "b"}},
		{"hard breaks", "x\n\ny", 100, []string{"x", "", "y"}},
		{"empty", "", 100, []string{""}},
		{"no wrap", "a  b\nc", 0, []string{"a  b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Wrap(tc.text, tc.maxWidth, testFont, 10)
			if err != nil {
				t.Fatalf("折行失败: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("折行结果不符 (-want +got):\n%s", diff)
			}
		})
	}
}

// TestWrapSplitInvariant 断言：折行前后单词序列一致，且只有单词独占一行时才允许超宽。
func TestWrapSplitInvariant(t *testing.T) {
	m := NewMeasurer(stubTypesetter{})
	text := "I request leave for two days due to a family function at my native place\n" +
		"Kindly grant permission supercalifragilisticexpialidocious and oblige"
	for _, maxWidth := range []float64{5, 17, 40, 84, 176} {
		lines, err := m.Wrap(text, maxWidth, testFont, 8)
		if err != nil {
			t.Fatalf("折行失败: %v", err)
		}
		if diff := cmp.Diff(strings.Fields(text), strings.Fields(strings.Join(lines, " "))); diff != "" {
			t.Fatalf("maxWidth=%g 时单词序列被改变:\n%s", maxWidth, diff)
		}
		for _, line := range lines {
			w, _ := m.Width(line, testFont, 8)
			if w > maxWidth && len(strings.Fields(line)) > 1 {
				t.Fatalf("maxWidth=%g 时行 %q 宽 %g 超限", maxWidth, line, w)
			}
		}
		// 幂等：已折好的行再次折行不变
		for _, line := range lines {
			again, err := m.Wrap(line, maxWidth, testFont, 8)
			if err != nil {
				t.Fatalf("折行失败: %v", err)
			}
			if len(again) != 1 || again[0] != line {
				t.Fatalf("行 %q 再次折行得到 %q", line, again)
			}
		}
	}
}

func TestCenterAndWidth(t *testing.T) {
	m := NewMeasurer(stubTypesetter{})
	off, err := m.Center("abcd", 20, testFont, 10)
	if err != nil {
		t.Fatalf("居中计算失败: %v", err)
	}
	if !near(off, 6) {
		t.Fatalf("期望偏移 6，实际 %g", off)
	}
	off, _ = m.Center("abcdefghijklmn", 20, testFont, 10)
	if !near(off, -4) {
		t.Fatalf("超宽文本期望负偏移 -4，实际 %g", off)
	}
	if w, _ := m.Width("", testFont, 10); w != 0 {
		t.Fatalf("空串宽度应为 0，实际 %g", w)
	}
}

func TestMeasurerPropagatesTypesetterError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMeasurer(failingTypesetter{err: boom})
	if _, err := m.Wrap("a b", 10, testFont, 8); !errors.Is(err, boom) {
		t.Fatalf("期望透传排版错误，实际 %v", err)
	}
	if _, err := NewMeasurer(nil).Width("a", testFont, 8); err == nil {
		t.Fatalf("缺少 Typesetter 时应返回错误")
	}
}

func TestLineStep(t *testing.T) {
	if got, want := LineStep(8), 8*1.15*25.4/72; !near(got, want) {
		t.Fatalf("8pt 行距期望 %g，实际 %g", want, got)
	}
}
