package reconstruct

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImage 上传内容不是图片
	ErrNotImage = errors.New("not an image")
	// ErrEmptyResult 服务返回的结果缺少视图或模型
	ErrEmptyResult = errors.New("empty reconstruction result")
	// ErrModelFormat 模型格式不在允许列表中
	ErrModelFormat = errors.New("unsupported model format")
)

// defaultAPIErrorMessage 服务没有给出错误信息时使用
const defaultAPIErrorMessage = "upload failed"

// APIError 重建服务返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reconstruct api: %s (status %d)", e.Message, e.StatusCode)
}
