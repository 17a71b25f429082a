package viewer

import "sync"

type fakePlayer struct {
	name  string
	id    string
	pos   BlockPos
	dim   string
	slots []Stack

	mu       sync.Mutex
	kicks    []string
	messages []string
	invReads int
}

func (p *fakePlayer) Username() string   { return p.name }
func (p *fakePlayer) UUID() string       { return p.id }
func (p *fakePlayer) BlockPos() BlockPos { return p.pos }
func (p *fakePlayer) Dimension() string  { return p.dim }

func (p *fakePlayer) Inventory() []Stack {
	p.mu.Lock()
	p.invReads++
	p.mu.Unlock()
	return p.slots
}

func (p *fakePlayer) Disconnect(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kicks = append(p.kicks, reason)
}

func (p *fakePlayer) SendMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, text)
}

type fakeHost []*fakePlayer

func (h fakeHost) ConnectedPlayers() []PlayerHandle {
	out := make([]PlayerHandle, 0, len(h))
	for _, p := range h {
		out = append(out, p)
	}
	return out
}

func steve() *fakePlayer {
	return &fakePlayer{
		name: "Steve",
		id:   "069a79f4-44e9-4726-a5be-fca90e38aaf5",
		pos:  BlockPos{10, 64, -3},
		dim:  "overworld",
		slots: []Stack{
			{},
			{Item: "minecraft:diamond", Count: 3},
			{},
			{Item: "minecraft:stick", Count: 1},
		},
	}
}

func alex() *fakePlayer {
	return &fakePlayer{
		name: "Alex",
		id:   "853c80ef-3c37-49fd-aa49-938b674adae6",
		pos:  BlockPos{-1, 70, 5},
		dim:  "the_nether",
	}
}

func attached(players ...*fakePlayer) *HostRef {
	ref := &HostRef{}
	ref.Attach(fakeHost(players))
	return ref
}
