package reconstruct

import (
	"context"
	"io"
	"sync"
)

// Status 上传流程状态
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusProcessing
	StatusComplete
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusProcessing:
		return "processing"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot 某一时刻的上传状态
type Snapshot struct {
	Status   Status
	Progress int // 0~100
	Err      error
	Result   *Result
}

// Tracker 上传流程状态机
// idle → uploading → processing → complete | error，Reset 回到 idle
// 可以在后台 goroutine 中 Run，同时在界面线程读取 Snapshot
type Tracker struct {
	mu       sync.Mutex
	snapshot Snapshot
	onChange func(Snapshot)
}

// NewTracker 创建状态机，onChange 可为 nil
func NewTracker(onChange func(Snapshot)) *Tracker {
	return &Tracker{onChange: onChange}
}

// Snapshot 返回当前状态
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// Reset 回到 idle，清除结果和错误
func (t *Tracker) Reset() {
	t.set(Snapshot{Status: StatusIdle})
}

func (t *Tracker) set(s Snapshot) {
	t.mu.Lock()
	t.snapshot = s
	onChange := t.onChange
	t.mu.Unlock()
	if onChange != nil {
		onChange(s)
	}
}

// Run 执行一次上传并记录每个状态
// 请求体全部发出之后才进入 StatusProcessing；失败时进入 StatusError 并返回错误
func (t *Tracker) Run(ctx context.Context, c *Client, name string, r io.Reader) (*Result, error) {
	t.set(Snapshot{Status: StatusUploading})

	result, err := c.reconstruct(ctx, name, r, func() {
		t.set(Snapshot{Status: StatusProcessing, Progress: 10})
	})
	if err != nil {
		t.set(Snapshot{Status: StatusError, Err: err})
		return nil, err
	}
	t.set(Snapshot{Status: StatusComplete, Progress: 100, Result: result})
	return result, nil
}
