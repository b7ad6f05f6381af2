package reconstruct

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// modelFormats 允许写入磁盘的模型扩展名，格式由服务端给出，不能直接拼进路径
var modelFormats = map[string]bool{
	"glb":  true,
	"gltf": true,
	"obj":  true,
}

// modelFileName 返回模型文件名，格式为空时使用 glb
func modelFileName(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "glb"
	}
	if !modelFormats[format] {
		return "", fmt.Errorf("%w: %q", ErrModelFormat, format)
	}
	return "model." + format, nil
}

// insideDir 目标路径必须位于 dir 内
func insideDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Views 重建得到的四个视角（base64 编码的 PNG）
type Views struct {
	Front string `json:"front"`
	Left  string `json:"left"`
	Right string `json:"right"`
	Back  string `json:"back"`
}

// Named 按固定顺序返回视角名和数据
func (v Views) Named() [][2]string {
	return [][2]string{
		{"front", v.Front},
		{"left", v.Left},
		{"right", v.Right},
		{"back", v.Back},
	}
}

// Result 重建结果
type Result struct {
	Status      string `json:"status"`
	Views       Views  `json:"views"`
	Model3D     string `json:"model_3d"` // base64 编码的 GLB
	ModelFormat string `json:"model_format"`
	Message     string `json:"message"`
}

// HasModel 是否包含 3D 模型
func (r *Result) HasModel() bool {
	return r.Model3D != ""
}

// ModelBytes 解码 3D 模型
func (r *Result) ModelBytes() ([]byte, error) {
	if !r.HasModel() {
		return nil, fmt.Errorf("%w: no model", ErrEmptyResult)
	}
	data, err := base64.StdEncoding.DecodeString(r.Model3D)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return data, nil
}

// validate 至少要有一个视角或模型
func (r *Result) validate() error {
	for _, v := range r.Views.Named() {
		if v[1] != "" {
			return nil
		}
	}
	if r.HasModel() {
		return nil
	}
	return ErrEmptyResult
}

// Save 把视角图片和模型写入目录，返回写入的文件路径
// 视角保存为 monument_<view>.png，模型保存为 model.<format>（默认 glb，只接受 glb/gltf/obj）
func (r *Result) Save(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	for _, v := range r.Views.Named() {
		name, encoded := v[0], v[1]
		if encoded == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return written, fmt.Errorf("failed to decode %s view: %w", name, err)
		}
		path := filepath.Join(dir, "monument_"+name+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if r.HasModel() {
		data, err := r.ModelBytes()
		if err != nil {
			return written, err
		}
		name, err := modelFileName(r.ModelFormat)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, name)
		if !insideDir(dir, path) {
			return written, fmt.Errorf("%w: %s escapes %s", ErrModelFormat, name, dir)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
