package server

import "time"

const (
	// TicksPerSecond 世界推进频率（20 TPS）
	TicksPerSecond = 20
)

var tickInterval = time.Duration(1000/TicksPerSecond) * time.Millisecond // 50ms

// StartTicker 启动房间的 Tick 循环（单线程推进世界），重复调用无效
func (r *Room) StartTicker() {
	r.tickerOnce.Do(func() {
		go r.run()
	})
}

// Stop 停止 Tick 循环，并断开所有玩家
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
		for _, p := range r.Players() {
			r.LeavePlayer(p)
		}
	})
}

func (r *Room) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick 推进一帧：处理输入 → 广播结果
func (r *Room) Tick() {
	start := time.Now()
	r.tickSeq.Add(1)
	r.ProcessInputs()
	r.Broadcast()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}
