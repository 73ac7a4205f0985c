package layout

import "time"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与 logo。
type BuildOptions struct {
	Typesetter Typesetter
	Logo       LogoResult
	// Geometry 为零值时使用 A4Geometry。
	Geometry Geometry
	// Created 写入 PDF 元信息，零值时不设置。
	Created time.Time
}

// Typesetter 负责文字度量，由渲染后端提供，保证布局与最终绘制使用同一套字体指标。
// 返回值单位为毫米。
type Typesetter interface {
	TextWidth(content string, font FontResource, sizePt float64) (float64, error)
}
