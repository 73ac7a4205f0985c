package assembler

import (
	"fmt"
	"os"
	"path/filepath"
)

// Saver 接收最终的 PDF 字节，每次成功生成恰好调用一次。
type Saver interface {
	Save(filename string, data []byte) error
}

// FileSaver 把 PDF 写入 Dir 目录。
type FileSaver struct {
	Dir string
}

// Path 返回 filename 在 Dir 下的完整路径。
func (s FileSaver) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

func (s FileSaver) Save(filename string, data []byte) error {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录 %s 失败: %w", s.Dir, err)
		}
	}
	path := s.Path(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}

// SaverFunc 让普通函数满足 Saver。
type SaverFunc func(filename string, data []byte) error

func (f SaverFunc) Save(filename string, data []byte) error { return f(filename, data) }
