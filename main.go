package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ByLCY/facultyletter/assembler"
	"github.com/ByLCY/facultyletter/assets"
	"github.com/ByLCY/facultyletter/dsl"
	"github.com/ByLCY/facultyletter/internal/config"
	"github.com/ByLCY/facultyletter/internal/logging"
	"github.com/ByLCY/facultyletter/letter"
	"github.com/ByLCY/facultyletter/renderer"
	canvasrenderer "github.com/ByLCY/facultyletter/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/facultyletter/renderer/fpdf"
)

// cliOptions 是命令行参数，非空值覆盖配置文件。
type cliOptions struct {
	ConfigPath string
	Input      string
	Data       string
	OutputDir  string
	Logo       string
	Backend    string
	Debug      string
	LogLevel   string
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML 配置文件路径（默认读取 CONFIG_PATH）")
	flag.StringVar(&opts.Input, "in", "", ".letter 输入文件路径")
	flag.StringVar(&opts.Data, "data", "", "JSON 数据，或 @path 读取文件；无 -in 时直接提供 from/to/subject/body/department")
	flag.StringVar(&opts.OutputDir, "out", "", "PDF 输出目录")
	flag.StringVar(&opts.Logo, "logo", "", "页眉 logo 路径（PNG/JPEG/WebP）")
	flag.StringVar(&opts.Backend, "backend", "", "渲染后端：fpdf 或 canvas")
	flag.StringVar(&opts.Debug, "debug", "", "布局调试 JSON 输出路径")
	flag.StringVar(&opts.LogLevel, "log-level", "", "日志级别")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// run 串联配置、输入解析与生成流程。
func run(ctx context.Context, opts cliOptions, stdout io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.Logger.File, cfg.Logger.MaxSizeMB, cfg.Logger.MaxBackups, cfg.Logger.MaxAgeDays, cfg.Logger.Compress, cfg.Logger.Level)

	rec, err := readRecord(opts.Input, opts.Data)
	if err != nil {
		return err
	}

	backend, err := newBackend(cfg.Render.Backend)
	if err != nil {
		return err
	}
	saver := assembler.FileSaver{Dir: cfg.Render.OutputDir}
	a, err := assembler.New(assembler.Options{
		Backend:   backend,
		Saver:     saver,
		Logo:      assets.NewLoader(cfg.Render.LogoPath),
		DebugJSON: cfg.Render.DebugJSON,
		OnStateChange: func(from, to assembler.State) {
			logging.Debug("state change", "from", from.String(), "to", to.String())
		},
	})
	if err != nil {
		return err
	}

	out, err := a.Generate(ctx, rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "已生成 PDF：%s\n", saver.Path(out.Filename))
	return nil
}

func loadConfig(opts cliOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFrom(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Render.OutputDir, opts.OutputDir)
	override(&cfg.Render.LogoPath, opts.Logo)
	override(&cfg.Render.Backend, opts.Backend)
	override(&cfg.Render.DebugJSON, opts.Debug)
	override(&cfg.Logger.Level, opts.LogLevel)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// readRecord 从 .letter 文件（可带 JSON 绑定数据）或纯 JSON 数据构造记录。
func readRecord(inputPath, rawData string) (letter.Record, error) {
	data, err := parseData(rawData)
	if err != nil {
		return letter.Record{}, err
	}
	if inputPath == "" {
		if data == nil {
			return letter.Record{}, fmt.Errorf("需要 -in 或 -data 提供申请函内容")
		}
		return letter.FromData(data)
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return letter.Record{}, fmt.Errorf("无法打开输入文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return letter.Record{}, fmt.Errorf("解析输入文件失败: %w", err)
	}
	return letter.FromDocument(doc, data)
}

func parseData(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	payload := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取 data 文件 %s 失败: %w", path, err)
		}
		payload = b
	}
	var data any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

func newBackend(name string) (renderer.Backend, error) {
	switch name {
	case config.BackendFPDF, "":
		return fpdfrenderer.NewRenderer(), nil
	case config.BackendCanvas:
		return canvasrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("不支持的渲染后端 %q", name)
	}
}

// describe 把错误转换为面向用户的文字：校验错误逐字段列出，渲染错误只给通用提示。
func describe(err error) string {
	var verr *letter.ValidationError
	if errors.As(err, &verr) {
		lines := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f.Field, f.Message))
		}
		return "请修正以下字段：\n" + strings.Join(lines, "\n")
	}
	var rerr *assembler.RenderExportError
	if errors.As(err, &rerr) {
		return rerr.UserMessage()
	}
	return fmt.Sprintf("生成 PDF 失败: %v", err)
}
