package viewer

// ItemView 物品栏中一格的 JSON 表示
type ItemView struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// PositionView 方块坐标与所在维度
type PositionView struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Z         int    `json:"z"`
	Dimension string `json:"dimension"`
}

// PlayerSnapshot 某一时刻玩家状态的只读投影，每个请求重新构建
type PlayerSnapshot struct {
	Username  string       `json:"username"`
	UUID      string       `json:"uuid"`
	Position  PositionView `json:"position"`
	Inventory []ItemView   `json:"inventory"`
}

// ToSnapshot 读取句柄的身份、位置与物品栏
func ToSnapshot(h PlayerHandle) PlayerSnapshot {
	return PlayerSnapshot{
		Username:  h.Username(),
		UUID:      h.UUID(),
		Position:  positionOf(h),
		Inventory: inventoryOf(h),
	}
}

// ToInventoryView 仅物品栏（跳过空格，保持槽位顺序）
func ToInventoryView(h PlayerHandle) []ItemView { return inventoryOf(h) }

// ToPositionView 仅位置
func ToPositionView(h PlayerHandle) PositionView { return positionOf(h) }

func inventoryOf(h PlayerHandle) []ItemView {
	slots := h.Inventory()
	out := make([]ItemView, 0, len(slots))
	for _, s := range slots {
		if s.Empty() {
			continue
		}
		out = append(out, ItemView{Item: s.Item, Count: s.Count})
	}
	return out
}

func positionOf(h PlayerHandle) PositionView {
	pos := h.BlockPos()
	return PositionView{X: pos[0], Y: pos[1], Z: pos[2], Dimension: h.Dimension()}
}
