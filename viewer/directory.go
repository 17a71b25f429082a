package viewer

// Directory 只读的玩家目录，基于宿主当前在线列表
type Directory struct {
	ref *HostRef
}

// NewDirectory 创建目录；ref 为 nil 时目录永远为空
func NewDirectory(ref *HostRef) *Directory {
	return &Directory{ref: ref}
}

// ListPlayers 返回所有在线玩家；宿主未挂载时返回空切片，从不失败
func (d *Directory) ListPlayers() []PlayerHandle {
	h, ok := d.ref.Host()
	if !ok {
		return []PlayerHandle{}
	}
	players := h.ConnectedPlayers()
	if players == nil {
		return []PlayerHandle{}
	}
	return players
}

// FindByIdentifier 线性扫描在线玩家，按 UUID 字符串精确（区分大小写）匹配
func (d *Directory) FindByIdentifier(id string) (PlayerHandle, bool) {
	for _, p := range d.ListPlayers() {
		if p.UUID() == id {
			return p, true
		}
	}
	return nil, false
}
