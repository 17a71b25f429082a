package server

import "github.com/google/uuid"

// InputKind 输入类型
type InputKind int

const (
	InputMove InputKind = iota
	InputDrop
)

// Input 客户端输入（意图），由服务端在 Tick 中解释并驱动世界状态
type Input struct {
	PlayerID uuid.UUID
	Kind     InputKind
	Command  Direction
	Slot     int
	Seq      int64 // 客户端本地序列号，用于去重与确认
}

// 入站输入的简单 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"move","command":"up"}、{"type":"drop","slot":3}
type InputMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Slot    int    `json:"slot,omitempty"`
	Seq     int64  `json:"seq,omitempty"`
}

// chatMessage 出站聊天消息
type chatMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// stateMessage 出站世界状态
type stateMessage struct {
	Type    string        `json:"type"`
	Room    string        `json:"room"`
	Tick    int64         `json:"tick"`
	Players []PlayerState `json:"players"`
}

// parseDirection 将客户端命令映射为方向，未知命令视为不动
func parseDirection(cmd string) Direction {
	switch cmd {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	default:
		return DirNone
	}
}
