// Package reconstruct 图片重建服务客户端
//
// 服务本身是外部协作者：上传一张遗址照片，返回四个视角和一个 3D 模型。
package reconstruct

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/decker502/timeleap/pkg/logging"
	"github.com/google/uuid"
)

// Endpoint 重建接口路径
const Endpoint = "/api/reconstruct"

// sniffLen http.DetectContentType 最多读取的字节数
const sniffLen = 512

// Client 重建服务客户端
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient 创建客户端，timeout <= 0 表示不限时
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Reconstruct 上传图片并等待重建结果
// name 为上传文件名；r 的内容必须是图片
func (c *Client) Reconstruct(ctx context.Context, name string, r io.Reader) (*Result, error) {
	return c.reconstruct(ctx, name, r, nil)
}

// reconstruct onSent 在请求体全部交给传输层之后调用一次，返回前一定已经调用过
// 校验失败、没有发出请求时不会调用
func (c *Client) reconstruct(ctx context.Context, name string, r io.Reader, onSent func()) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	contentType := http.DetectContentType(data[:min(len(data), sniffLen)])
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotImage, name, contentType)
	}

	body, formType, err := multipartBody(name, contentType, data)
	if err != nil {
		return nil, err
	}

	size := body.Len()
	sent := sync.OnceFunc(func() {
		if onSent != nil {
			onSent()
		}
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+Endpoint,
		&sentReader{r: body, remaining: size, sent: sent})
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = int64(size)
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := logging.Named("Reconstruct").With("request_id", requestID)
	log.Infof("uploading %s (%s, %d bytes)", name, contentType, len(data))

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reconstruct request failed: %w", err)
	}
	defer resp.Body.Close()
	// 服务端提前响应时传输层可能没读到末尾
	sent()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: defaultAPIErrorMessage}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		log.Warnf("reconstruct failed: %v", apiErr)
		return nil, apiErr
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	log.Infof("reconstruct complete: status=%s model=%v", result.Status, result.HasModel())
	return &result, nil
}

// sentReader 读完最后一个字节时调用 sent
type sentReader struct {
	r         io.Reader
	remaining int
	sent      func()
}

func (s *sentReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.remaining -= n
	if s.remaining <= 0 || err == io.EOF {
		s.sent()
	}
	return n, err
}

// multipartBody 构造只含 file 字段的表单
func multipartBody(name, contentType string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="file"; filename=%q`, name),
	}
	header["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// IsAPIError 判断错误是否来自服务端
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
