package letter

import (
	"strings"
	"time"
)

const (
	dateLayout     = "02.01.2006"
	filenamePrefix = "Faculty_Request_Letter_"
)

// FormatDate 以 DD.MM.YYYY（零填充、点分隔）格式化日期，使用 t 自身的时区。
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Filename 根据 DD.MM.YYYY 日期生成导出文件名，点替换为下划线。
func Filename(date string) string {
	return filenamePrefix + strings.ReplaceAll(date, ".", "_") + ".pdf"
}
