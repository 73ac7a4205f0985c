package letter

import (
	"fmt"
	"strings"

	"github.com/ByLCY/facultyletter/binding"
	"github.com/ByLCY/facultyletter/dsl"
)

// FromDocument 把 .letter 文件的字段映射为 Record，字段值中的 ${path} 用 data 插值。
// 未知字段、重复字段或无法解析的占位符都会返回错误；date 字段会被接受但在渲染时被覆盖。
func FromDocument(doc *dsl.Document, data any) (Record, error) {
	var rec Record
	if doc == nil {
		return rec, fmt.Errorf("letter: 输入文档为空")
	}
	seen := map[Field]bool{}
	for _, f := range doc.Fields {
		field := Field(strings.ToLower(f.Key))
		if seen[field] {
			return Record{}, fmt.Errorf("letter: %s: 字段 %q 重复", f.Pos, f.Key)
		}
		value, err := f.Value()
		if err != nil {
			return Record{}, fmt.Errorf("letter: %w", err)
		}
		value, missing := binding.Interpolate(value, data)
		if len(missing) > 0 {
			return Record{}, fmt.Errorf("letter: %s: 字段 %q 引用了不存在的数据 %s", f.Pos, f.Key, strings.Join(missing, ", "))
		}
		if !rec.Set(field, value) {
			return Record{}, fmt.Errorf("letter: %s: 未知字段 %q", f.Pos, f.Key)
		}
		seen[field] = true
	}
	return rec, nil
}

// FromData 直接从 JSON 数据的顶层键（from/to/subject/body/department）读取字段。
// 缺失的键保留为空，由 Validate 统一报告。
func FromData(data any) (Record, error) {
	var rec Record
	if data == nil {
		return rec, nil
	}
	if _, ok := data.(map[string]any); !ok {
		return rec, fmt.Errorf("letter: JSON 数据必须是对象")
	}
	for _, f := range RequiredFields {
		if v, ok := binding.LookupString(data, string(f)); ok {
			rec.Set(f, v)
		}
	}
	return rec, nil
}
