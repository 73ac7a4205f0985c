// Package config 从 YAML 文件加载运行配置。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 可选的渲染后端。
const (
	BackendFPDF   = "fpdf"
	BackendCanvas = "canvas"
)

// Config 是 facultyletter 的完整配置。
type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Render RenderConfig `yaml:"render"`
}

type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type RenderConfig struct {
	Backend   string `yaml:"backend"`
	OutputDir string `yaml:"output_dir"`
	LogoPath  string `yaml:"logo_path"`
	DebugJSON string `yaml:"debug_json"`
}

// Default 返回未提供配置文件时使用的值。
func Default() Config {
	return Config{
		Logger: LoggerConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Render: RenderConfig{Backend: BackendFPDF, OutputDir: "."},
	}
}

// Load 读取 CONFIG_PATH 指向的文件；未设置时返回默认配置。
func Load() (Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom 读取 path 处的 YAML，未出现的键保留默认值。path 为空时返回默认配置；
// 显式给出的文件不存在时返回包装了 os.ErrNotExist 的错误。
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: 读取 %s 失败: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: 解析 %s 失败: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查取值范围。
func (c Config) Validate() error {
	switch c.Render.Backend {
	case BackendFPDF, BackendCanvas:
	default:
		return fmt.Errorf("config: 不支持的渲染后端 %q", c.Render.Backend)
	}
	if c.Render.OutputDir == "" {
		return fmt.Errorf("config: render.output_dir 不能为空")
	}
	if c.Logger.MaxSizeMB < 0 || c.Logger.MaxBackups < 0 || c.Logger.MaxAgeDays < 0 {
		return fmt.Errorf("config: logger 的大小与保留数不能为负数")
	}
	return nil
}
