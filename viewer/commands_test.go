package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKickRequest_Defaults(t *testing.T) {
	assert.Equal(t, Kick{Reason: DefaultKickReason}, KickRequest{}.Command())
	afk := "AFK"
	assert.Equal(t, Kick{Reason: "AFK"}, KickRequest{Reason: &afk}.Command())
	empty := ""
	assert.Equal(t, Kick{Reason: ""}, KickRequest{Reason: &empty}.Command())
}

func TestMessageRequest_Defaults(t *testing.T) {
	assert.Equal(t, Message{}, MessageRequest{}.Command())
	hi := "hi"
	assert.Equal(t, Message{Text: "hi"}, MessageRequest{Message: &hi}.Command())
}

func TestDispatcher_Apply(t *testing.T) {
	d := NewDispatcher(nil)
	p := steve()

	assert.Equal(t, Result{Success: true}, d.Apply(p, Kick{Reason: "AFK"}))
	assert.Equal(t, Result{Success: true}, d.Apply(p, Message{Text: "hello"}))
	assert.Equal(t, Result{Success: true}, d.Apply(p, Message{Text: "hello"}))

	assert.Equal(t, []string{"AFK"}, p.kicks)
	// 不去重：调用两次就发送两次
	assert.Equal(t, []string{"hello", "hello"}, p.messages)
}
