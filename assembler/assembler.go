// Package assembler 串联校验、排版、渲染与保存，一次只处理一份申请函。
package assembler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/ByLCY/facultyletter/assets"
	"github.com/ByLCY/facultyletter/internal/logging"
	"github.com/ByLCY/facultyletter/layout"
	"github.com/ByLCY/facultyletter/letter"
	"github.com/ByLCY/facultyletter/renderer"
)

// State 是生成流程的阶段。
type State int

const (
	Idle State = iota
	Validating
	Rendering
	Exporting
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Rendering:
		return "rendering"
	case Exporting:
		return "exporting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrBusy 表示已有一份申请函正在生成。
var ErrBusy = errors.New("assembler: 已有 PDF 正在生成")

// UserMessage 是渲染或导出失败时展示给用户的提示。
const UserMessage = "Error generating PDF. Please try again."

// RenderExportError 包装渲染或导出阶段的失败。
type RenderExportError struct {
	Stage State
	Err   error
}

func (e *RenderExportError) Error() string {
	return fmt.Sprintf("assembler: %s 阶段失败: %v", e.Stage, e.Err)
}

func (e *RenderExportError) Unwrap() error { return e.Err }

// UserMessage 返回面向用户的通用提示，细节只进日志。
func (e *RenderExportError) UserMessage() string { return UserMessage }

// LogoSource 提供 logo，assets.Loader 即为实现。
type LogoSource interface {
	Load() layout.LogoResult
}

// Options 配置 Assembler 的依赖。
type Options struct {
	Backend renderer.Backend
	Saver   Saver
	Logo    LogoSource
	// Clock 为空时使用 time.Now。
	Clock func() time.Time
	// OnStateChange 在每次状态迁移后被调用（不持有锁）。
	OnStateChange func(from, to State)
	// DebugJSON 非空时把布局结果写到该路径，写入失败只记录警告。
	DebugJSON string
}

// Output 描述一次成功的生成。
type Output struct {
	RenderID string
	Filename string
	Date     string
	Size     int
	Layout   *layout.Result
}

// Assembler 驱动 Idle → Validating → Rendering → Exporting → Done 的流程。
type Assembler struct {
	opts Options

	mu    sync.Mutex
	state State
}

// New 创建 Assembler，Backend 与 Saver 必须提供。
func New(opts Options) (*Assembler, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("assembler: 缺少渲染后端")
	}
	if opts.Saver == nil {
		return nil, fmt.Errorf("assembler: 缺少 Saver")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logo == nil {
		opts.Logo = assets.NewLoader("")
	}
	return &Assembler{opts: opts}, nil
}

// State 返回当前阶段。
func (a *Assembler) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Assembler) transition(to State) {
	a.mu.Lock()
	from := a.state
	a.state = to
	a.mu.Unlock()
	if a.opts.OnStateChange != nil {
		a.opts.OnStateChange(from, to)
	}
}

// begin 在空闲时占用 Assembler。
func (a *Assembler) begin() bool {
	a.mu.Lock()
	if a.state != Idle {
		a.mu.Unlock()
		return false
	}
	a.state = Validating
	a.mu.Unlock()
	if a.opts.OnStateChange != nil {
		a.opts.OnStateChange(Idle, Validating)
	}
	return true
}

// Generate 校验记录、写入当天日期、排版渲染并调用一次 Saver。
// 校验失败返回 *letter.ValidationError，渲染或导出失败返回 *RenderExportError；两种情况都回到 Idle。
func (a *Assembler) Generate(ctx context.Context, rec letter.Record) (out *Output, err error) {
	renderID := xid.New().String()
	stage := Validating
	// 时钟、logo 与状态回调中的 panic 同样要让 Assembler 回到 Idle
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, a.recoverPanic(renderID, stage, r)
		}
	}()
	if !a.begin() {
		return nil, ErrBusy
	}

	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		logging.Warn("validation failed", "render_id", renderID, "error", err)
		a.transition(Idle)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		a.transition(Idle)
		return nil, err
	}

	stage = Rendering
	a.transition(Rendering)
	now := a.opts.Clock()
	date := letter.FormatDate(now)
	rec = rec.WithDate(date)

	logo := a.opts.Logo.Load()
	if logo.Err != nil {
		logging.Warn("logo unavailable, header drawn without it", "render_id", renderID, "error", logo.Err)
	}

	var res *layout.Result
	err = guard(func() error {
		var err error
		res, err = layout.Build(rec, layout.BuildOptions{
			Typesetter: a.opts.Backend,
			Logo:       logo,
			Created:    now,
		})
		return err
	})
	if err != nil {
		return nil, a.fail(renderID, Rendering, err)
	}
	if a.opts.DebugJSON != "" {
		if err := layout.WriteDebugJSON(res, a.opts.DebugJSON); err != nil {
			logging.Warn("write debug json failed", "render_id", renderID, "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, a.fail(renderID, Rendering, err)
	}

	stage = Exporting
	a.transition(Exporting)
	filename := letter.Filename(date)
	var data []byte
	err = guard(func() error {
		var err error
		if data, err = a.opts.Backend.Render(res); err != nil {
			return err
		}
		return a.opts.Saver.Save(filename, data)
	})
	if err != nil {
		return nil, a.fail(renderID, Exporting, err)
	}

	stage = Done
	a.transition(Done)
	logging.Info("pdf generated", "render_id", renderID, "file", filename, "bytes", len(data))
	a.transition(Idle)
	return &Output{RenderID: renderID, Filename: filename, Date: date, Size: len(data), Layout: res}, nil
}

func (a *Assembler) fail(renderID string, stage State, err error) error {
	logging.Error("pdf generation failed", "render_id", renderID, "stage", stage.String(), "error", err)
	a.transition(Failed)
	a.transition(Idle)
	return &RenderExportError{Stage: stage, Err: err}
}

// recoverPanic 处理 guard 之外的 panic。fail 本身再次 panic（例如状态回调）时直接复位为 Idle。
func (a *Assembler) recoverPanic(renderID string, stage State, r any) error {
	perr := fmt.Errorf("panic: %v", r)
	var err error
	if gerr := guard(func() error {
		err = a.fail(renderID, stage, perr)
		return nil
	}); gerr != nil {
		a.mu.Lock()
		a.state = Idle
		a.mu.Unlock()
		err = &RenderExportError{Stage: stage, Err: perr}
	}
	return err
}

// guard 把后端 panic 转为错误。
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
