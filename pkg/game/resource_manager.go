package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/decker502/timeleap/pkg/embedded"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp" // 注册 WebP 解码器
	"golang.org/x/sync/errgroup"
)

// maxPreloadConcurrency 同时进行的图片加载数量上限
const maxPreloadConcurrency = 4

// placeholderColor 图片加载失败时的占位色
var placeholderColor = color.RGBA{R: 0x2a, G: 0x2a, B: 0x2e, A: 0xff}

// ResourceManager 集中管理展示页的图片资源
// 图片只加载一次并缓存复用
//
// 支持的来源：
//   - http:// 与 https:// 远程地址
//   - 本地文件路径
//   - 嵌入的 data/ 资源（本地文件不存在时回退）
//
// 支持 PNG、JPEG 和 WebP 格式。
// 解码后的图片可以被多个 goroutine 并发加载（Preload），
// 转换为 ebiten.Image 只在游戏循环中进行。
type ResourceManager struct {
	client *http.Client

	mu         sync.Mutex
	decoded    map[string]image.Image   // 来源 -> 解码后的图片
	imageCache map[string]*ebiten.Image // 来源 -> GPU 图片
}

// NewResourceManager 创建资源管理器
// client 为 nil 时使用带超时的默认客户端
func NewResourceManager(client *http.Client) *ResourceManager {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ResourceManager{
		client:     client,
		decoded:    make(map[string]image.Image),
		imageCache: make(map[string]*ebiten.Image),
	}
}

// Decode 加载并解码图片，结果缓存
func (rm *ResourceManager) Decode(ctx context.Context, source string) (image.Image, error) {
	rm.mu.Lock()
	if img, ok := rm.decoded[source]; ok {
		rm.mu.Unlock()
		return img, nil
	}
	rm.mu.Unlock()

	data, err := rm.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", source, err)
	}
	logging.Named("ResourceManager").Debugf("decoded %s image %s (%dx%d)",
		format, source, img.Bounds().Dx(), img.Bounds().Dy())

	rm.mu.Lock()
	rm.decoded[source] = img
	rm.mu.Unlock()
	return img, nil
}

func (rm *ResourceManager) fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("%w: empty path", ErrUnsupportedSource)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return rm.fetchURL(ctx, source)
	}

	data, err := os.ReadFile(source)
	if err == nil {
		return data, nil
	}
	if embedded.Exists(source) {
		return embedded.ReadFile(source)
	}
	return nil, fmt.Errorf("failed to open image file %s: %w", source, err)
}

func (rm *ResourceManager) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	resp, err := rm.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", url, err)
	}
	return data, nil
}

// Preload 并发加载一组图片
// 单张图片失败只记录日志，不影响其他图片；只有 ctx 被取消时返回错误
func (rm *ResourceManager) Preload(ctx context.Context, sources ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPreloadConcurrency)

	log := logging.Named("ResourceManager")
	for _, source := range sources {
		if source == "" {
			continue
		}
		source := source
		g.Go(func() error {
			if _, err := rm.Decode(gctx, source); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warnf("preload failed: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// LoadImage 返回可绘制的图片
// 必须在游戏循环中调用；加载失败时返回错误，调用方可以改用 Placeholder
func (rm *ResourceManager) LoadImage(ctx context.Context, source string) (*ebiten.Image, error) {
	rm.mu.Lock()
	cached, ok := rm.imageCache[source]
	rm.mu.Unlock()
	if ok {
		return cached, nil
	}

	img, err := rm.Decode(ctx, source)
	if err != nil {
		return nil, err
	}
	ebitenImg := ebiten.NewImageFromImage(img)

	rm.mu.Lock()
	rm.imageCache[source] = ebitenImg
	rm.mu.Unlock()
	return ebitenImg, nil
}

// IsDecoded 图片是否已经解码缓存
func (rm *ResourceManager) IsDecoded(source string) bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	_, ok := rm.decoded[source]
	return ok
}

// Placeholder 创建纯色占位图，clr 为 nil 时使用默认占位色
func Placeholder(width, height int, clr color.Color) *ebiten.Image {
	if clr == nil {
		clr = placeholderColor
	}
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	img := ebiten.NewImage(width, height)
	img.Fill(clr)
	return img
}
