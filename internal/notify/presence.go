package notify

import "sync"

// Presence tracks which profile ids currently hold a live connection.
// It is process scoped and only consulted when building events.
type Presence struct {
	mu     sync.RWMutex
	online map[string]int
}

func NewPresence() *Presence {
	return &Presence{online: make(map[string]int)}
}

// Populate replaces the registry content with ids.
func (p *Presence) Populate(ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = make(map[string]int, len(ids))
	for _, id := range ids {
		p.online[id]++
	}
}

// Connect registers one connection for id. A profile may hold several.
func (p *Presence) Connect(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[id]++
}

// Disconnect drops one connection for id.
func (p *Presence) Disconnect(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.online[id] <= 1 {
		delete(p.online, id)
		return
	}
	p.online[id]--
}

func (p *Presence) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = make(map[string]int)
}

func (p *Presence) IsOnline(id string) bool {
	if p == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online[id] > 0
}
