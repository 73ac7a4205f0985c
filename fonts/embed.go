// Package fonts 提供内置的 TrueType 字体，供不依赖 PDF 核心字体的后端使用。
package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var builtin = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}

// ForStyle 按字重返回内置字体名："B" 为粗体，其余为常规。
func ForStyle(style string) string {
	if strings.Contains(style, "B") {
		return "go-bold"
	}
	return "go-regular"
}
