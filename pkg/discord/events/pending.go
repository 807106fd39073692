package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingEditTTL limita a validade de um modal de edição aberto.
const pendingEditTTL = 5 * time.Minute

type pendingEdit struct {
	groupID   string
	creatorID string
	expiresAt time.Time
}

// pendingEdits guarda as sessões de edição abertas, indexadas por um token
// opaco embutido no custom ID do modal.
type pendingEdits struct {
	mu      sync.Mutex
	entries map[string]pendingEdit
	now     func() time.Time
}

func newPendingEdits() *pendingEdits {
	return &pendingEdits{
		entries: make(map[string]pendingEdit),
		now:     time.Now,
	}
}

// open registra uma nova sessão de edição e devolve o token dela.
func (p *pendingEdits) open(groupID, creatorID string) string {
	token := uuid.NewString()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	p.entries[token] = pendingEdit{
		groupID:   groupID,
		creatorID: creatorID,
		expiresAt: p.now().Add(pendingEditTTL),
	}
	return token
}

// claim consome uma sessão de edição. Retorna false para tokens
// desconhecidos ou expirados.
func (p *pendingEdits) claim(token string) (pendingEdit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[token]
	if !ok {
		return pendingEdit{}, false
	}
	delete(p.entries, token)
	if p.now().After(entry.expiresAt) {
		return pendingEdit{}, false
	}
	return entry, true
}

// prune descarta sessões expiradas. Chamado sob o lock.
func (p *pendingEdits) prune() {
	now := p.now()
	for token, entry := range p.entries {
		if now.After(entry.expiresAt) {
			delete(p.entries, token)
		}
	}
}
