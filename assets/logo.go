// Package assets 负责加载页眉 logo。加载失败不会中断出图，错误随结果交给布局阶段。
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/webp"

	"github.com/ByLCY/facultyletter/layout"
)

// ErrNoLogo 表示未配置 logo 路径。
var ErrNoLogo = errors.New("未配置 logo 路径")

// LoadError 描述 logo 读取或解码失败。
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("加载 logo %s 失败: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader 读取并校验 logo，结果只计算一次并被后续调用复用。
type Loader struct {
	Path string

	once   sync.Once
	result layout.LogoResult
}

// NewLoader 创建指向 path 的 Loader。
func NewLoader(path string) *Loader { return &Loader{Path: path} }

// Load 返回 logo 结果；失败时 Image 为空、Err 为 *LoadError。
func (l *Loader) Load() layout.LogoResult {
	l.once.Do(func() {
		img, err := l.load()
		if err != nil {
			l.result = layout.LogoResult{Err: &LoadError{Path: l.Path, Err: err}}
			return
		}
		l.result = layout.LogoResult{Image: img}
	})
	return l.result
}

func (l *Loader) load() (*layout.ImageResource, error) {
	if l.Path == "" {
		return nil, ErrNoLogo
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Base(l.Path), data)
}

// Decode 校验图片字节。PNG 与 JPEG 原样保留，其余可解码格式（如 WebP）转码为 PNG，
// 以便所有 PDF 后端都能直接嵌入。
func Decode(name string, data []byte) (*layout.ImageResource, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("无法识别图片格式: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("图片尺寸为空")
	}
	res := &layout.ImageResource{Name: name, Format: format, PixelWidth: cfg.Width, PixelHeight: cfg.Height}
	switch format {
	case "png", "jpeg":
		// 完整解码一次，尽早发现截断的文件
		if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("解码 %s 失败: %w", format, err)
		}
		res.Data = data
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("解码 %s 失败: %w", format, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("转码 %s 为 png 失败: %w", format, err)
		}
		res.Format = "png"
		res.Data = buf.Bytes()
	}
	return res, nil
}
