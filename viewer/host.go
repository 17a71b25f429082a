package viewer

import "sync/atomic"

// Stack 物品栏中的一格
type Stack struct {
	Item  string
	Count int
}

// Empty 空格：没有物品或数量为 0
func (s Stack) Empty() bool { return s.Item == "" || s.Count <= 0 }

// BlockPos 方块网格坐标 x, y, z
type BlockPos [3]int

// PlayerHandle 宿主实时玩家的句柄。每次调用都读取宿主当前状态，
// 句柄只在单个请求处理期间使用，不会被保存。
type PlayerHandle interface {
	Username() string
	// UUID 返回玩家唯一标识的字符串形式，在玩家生命周期内稳定
	UUID() string
	BlockPos() BlockPos
	Dimension() string
	// Inventory 按槽位顺序返回物品栏，包含空格
	Inventory() []Stack
	// Disconnect 以给定原因断开玩家连接（异步投递，不等待完成）
	Disconnect(reason string)
	// SendMessage 向玩家发送一条文本消息
	SendMessage(text string)
}

// Host 宿主游戏服务
type Host interface {
	// ConnectedPlayers 返回当前在线玩家，顺序由宿主决定
	ConnectedPlayers() []PlayerHandle
}

// HostRef 进程内唯一的宿主挂载点：启动时 Attach 一次，之后被所有请求并发读取。
// 零值表示宿主尚未挂载。
type HostRef struct {
	v atomic.Pointer[hostBox]
}

type hostBox struct{ h Host }

// Attach 挂载宿主；传入 nil 等同于 Detach
func (r *HostRef) Attach(h Host) {
	if h == nil {
		r.v.Store(nil)
		return
	}
	r.v.Store(&hostBox{h: h})
}

// Detach 卸载宿主（例如宿主关闭时）
func (r *HostRef) Detach() { r.v.Store(nil) }

// Host 返回当前宿主；未挂载时 ok 为 false
func (r *HostRef) Host() (h Host, ok bool) {
	if r == nil {
		return nil, false
	}
	b := r.v.Load()
	if b == nil {
		return nil, false
	}
	return b.h, true
}
