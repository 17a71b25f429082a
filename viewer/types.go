package viewer

// KickRequest POST /players/{uuid}/kick 的请求体
// 示例：{"reason":"AFK"}；reason 缺省或为 null 时使用 DefaultKickReason
type KickRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Command 转换为 Kick 命令
func (r KickRequest) Command() Kick {
	if r.Reason == nil {
		return Kick{Reason: DefaultKickReason}
	}
	return Kick{Reason: *r.Reason}
}

// MessageRequest POST /players/{uuid}/message 的请求体
// 示例：{"message":"hello"}；缺省时发送空字符串
type MessageRequest struct {
	Message *string `json:"message,omitempty"`
}

// Command 转换为 Message 命令
func (r MessageRequest) Command() Message {
	if r.Message == nil {
		return Message{}
	}
	return Message{Text: *r.Message}
}
