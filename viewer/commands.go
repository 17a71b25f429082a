package viewer

import "go.uber.org/zap"

// DefaultKickReason 未指定原因时展示给被踢玩家的文本
const DefaultKickReason = "Kicked by admin"

// Command 管理命令：Kick 或 Message
type Command interface {
	command()
}

// Kick 断开玩家连接
type Kick struct {
	Reason string
}

// Message 向玩家发送文本
type Message struct {
	Text string
}

func (Kick) command()    {}
func (Message) command() {}

// Result 命令执行结果
type Result struct {
	Success bool `json:"success"`
}

// Dispatcher 对已解析的玩家执行管理命令。命令投递给宿主后立即返回，不去重、不重试。
type Dispatcher struct {
	log *zap.SugaredLogger
}

// NewDispatcher 创建命令分发器；log 为 nil 时不输出日志
func NewDispatcher(log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{log: log}
}

// Apply 执行命令
func (d *Dispatcher) Apply(h PlayerHandle, c Command) Result {
	switch c := c.(type) {
	case Kick:
		d.log.Infow("kick player", "uuid", h.UUID(), "username", h.Username(), "reason", c.Reason)
		h.Disconnect(c.Reason)
	case Message:
		d.log.Infow("message player", "uuid", h.UUID(), "username", h.Username(), "len", len(c.Text))
		h.SendMessage(c.Text)
	}
	return Result{Success: true}
}
