package game

import (
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定站点的展示场景，避免循环依赖
type SceneFactory func(siteID int) (Scene, error)

// SceneManager 控制当前活动的场景
// 任一时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
// 旧场景实现了 Closable 时先释放其资源
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.closeCurrent()
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadSite 创建并切换到指定站点的展示场景
// 创建失败时保留当前场景
func (sm *SceneManager) LoadSite(siteID int) error {
	log := logging.Named("SceneManager")
	log.Infof("加载站点: %d", siteID)

	if sm.sceneFactory == nil {
		return ErrNoSceneFactory
	}

	newScene, err := sm.sceneFactory(siteID)
	if err != nil {
		log.Warnf("无法创建站点场景 %d: %v", siteID, err)
		return err
	}
	sm.SwitchTo(newScene)
	log.Infof("成功切换到站点: %d", siteID)
	return nil
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 释放当前场景，用于窗口关闭
func (sm *SceneManager) Close() error {
	err := sm.closeCurrent()
	sm.currentScene = nil
	return err
}

func (sm *SceneManager) closeCurrent() error {
	closable, ok := sm.currentScene.(Closable)
	if !ok {
		return nil
	}
	if err := closable.Close(); err != nil {
		logging.Named("SceneManager").Warnf("释放场景失败: %v", err)
		return err
	}
	return nil
}
