package letter

import (
	"errors"
	"strings"
)

// ErrValidation 表示至少一个必填字段为空；具体信息见 *ValidationError。
var ErrValidation = errors.New("letter: validation failed")

// FieldError 是单个字段的校验信息，Message 可直接展示给用户。
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// ValidationError 汇总所有字段错误，按 RequiredFields 的顺序排列。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Message)
	}
	return "letter: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Messages 以字段为键返回错误信息，便于表单逐项展示。
func (e *ValidationError) Messages() map[Field]string {
	out := make(map[Field]string, len(e.Fields))
	for _, fe := range e.Fields {
		out[fe.Field] = fe.Message
	}
	return out
}

var requiredMessages = map[Field]string{
	FieldFrom:       "From field is required",
	FieldTo:         "To field is required",
	FieldSubject:    "Subject is required",
	FieldBody:       "Body is required",
	FieldDepartment: "Department is required",
}

// Validate 检查五个必填字段；仅含空白字符的值视为空。
func (r Record) Validate() error {
	var fields []FieldError
	for _, f := range RequiredFields {
		if strings.TrimSpace(r.Get(f)) == "" {
			fields = append(fields, FieldError{Field: f, Message: requiredMessages[f]})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
