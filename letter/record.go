// Package letter 定义教职工申请函（Faculty Request Letter）的数据记录、校验与命名规则。
package letter

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field 标识记录中的一个字段，取值与输入文件/JSON 中的键一致。
type Field string

const (
	FieldFrom       Field = "from"
	FieldTo         Field = "to"
	FieldSubject    Field = "subject"
	FieldBody       Field = "body"
	FieldDepartment Field = "department"
	FieldDate       Field = "date"
)

// RequiredFields 按表单顺序列出必填字段。
var RequiredFields = []Field{FieldFrom, FieldTo, FieldSubject, FieldBody, FieldDepartment}

var allFields = []Field{FieldFrom, FieldTo, FieldSubject, FieldBody, FieldDepartment, FieldDate}

// Record 是一次导出所需的全部用户数据。
// Date 不由用户填写：每次渲染都会用当前时间覆盖。
type Record struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Department string `json:"department"`
	Date       string `json:"date"`
}

// Get 返回指定字段的值；未知字段返回空串。
func (r Record) Get(f Field) string {
	switch f {
	case FieldFrom:
		return r.From
	case FieldTo:
		return r.To
	case FieldSubject:
		return r.Subject
	case FieldBody:
		return r.Body
	case FieldDepartment:
		return r.Department
	case FieldDate:
		return r.Date
	default:
		return ""
	}
}

// Set 写入指定字段，未知字段返回 false。
func (r *Record) Set(f Field, value string) bool {
	switch f {
	case FieldFrom:
		r.From = value
	case FieldTo:
		r.To = value
	case FieldSubject:
		r.Subject = value
	case FieldBody:
		r.Body = value
	case FieldDepartment:
		r.Department = value
	case FieldDate:
		r.Date = value
	default:
		return false
	}
	return true
}

// Normalize 统一换行符为 \n 并做 NFC 规范化，保证同一文本的测量结果稳定。
func (r Record) Normalize() Record {
	out := r
	for _, f := range allFields {
		out.Set(f, normalizeText(r.Get(f)))
	}
	return out
}

// WithDate 返回写入了日期的副本。
func (r Record) WithDate(date string) Record {
	r.Date = date
	return r
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
