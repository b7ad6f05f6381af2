package game

import "errors"

var (
	// ErrNoSceneFactory 未设置场景工厂
	ErrNoSceneFactory = errors.New("scene factory not set")
	// ErrUnsupportedSource 无法识别的图片来源
	ErrUnsupportedSource = errors.New("unsupported image source")
)
