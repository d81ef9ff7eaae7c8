// Package assistant relays chat messages from the storefront widget to an
// external completion API. The external service is treated strictly as a
// capability: anything implementing Completer can serve, so tests substitute
// a stub. Failures never propagate - they become a fallback reply.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"storefront-service/internal/domain"
)

// Completer sends a single user message with a system instruction to a
// completion API and returns the assistant's reply text.
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

// ErrRelayBusy is returned while a send for the same session is still in
// flight. Sends are serialized per session: a new one is only accepted after
// the prior one resolves.
var ErrRelayBusy = errors.New("assistant: a message for this session is already in flight")

// Fallback replies substituted for relay failures. User-facing copy, hence
// the storefront's language.
const (
	replyNotConfigured = "Моля, конфигурирайте API ключ за Gemini, за да използвате асистента."
	replyFailure       = "Възникна грешка при свързването с асистента. Моля, опитайте по-късно."
	replyEmpty         = "Съжалявам, не можах да генерирам отговор."
)

const systemPrompt = `Вие сте полезен и приятелски настроен асистент за пазаруване.
Вашата цел е да помагате на потребителите да намерят продукти, да сравняват цени и да отговарят на въпроси за наличности.

Налични продукти в момента (използвайте тази информация, за да препоръчвате конкретни артикули):
%s

Отговаряйте кратко, учтиво и на български език. Ако потребителят пита за продукт, който не е в списъка, предложете най-близката алтернатива или кажете, че в момента нямаме точно този модел.
Акцентирайте върху "Genius" офертите, ако е възможно.`

// Relay forwards user text plus a catalog summary to a Completer. A nil
// completer means the assistant is not configured; every send then returns
// the static not-configured reply without calling out.
type Relay struct {
	completer Completer
	logger    *log.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewRelay creates a Relay over completer. completer may be nil.
func NewRelay(completer Completer, logger *log.Logger) *Relay {
	return &Relay{
		completer: completer,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

// Send relays message for the given session. The reply is the assistant's
// text, or a fallback string when the assistant is unconfigured, errors out
// or answers empty. The only error returned is ErrRelayBusy; no conversation
// history is transmitted, each call stands alone.
func (r *Relay) Send(ctx context.Context, sessionID, message string, products []domain.Product) (string, error) {
	if err := r.acquire(sessionID); err != nil {
		return "", err
	}
	defer r.release(sessionID)

	if r.completer == nil {
		return replyNotConfigured, nil
	}

	reply, err := r.completer.Complete(ctx, buildSystemInstruction(products), message)
	if err != nil {
		r.logger.Printf("WARN: assistant completion failed: %v", err)
		return replyFailure, nil
	}
	if reply == "" {
		return replyEmpty, nil
	}
	return reply, nil
}

func (r *Relay) acquire(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[sessionID]; busy {
		return ErrRelayBusy
	}
	r.inFlight[sessionID] = struct{}{}
	return nil
}

func (r *Relay) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, sessionID)
}

// catalogEntry is the per-product context sent to the completion API.
type catalogEntry struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// buildSystemInstruction serializes the catalog snapshot (id, title, price,
// category only) into the assistant's system prompt.
func buildSystemInstruction(products []domain.Product) string {
	entries := make([]catalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, catalogEntry{ID: p.ID, Title: p.Title, Price: p.Price, Category: p.Category})
	}
	summary, err := json.Marshal(entries)
	if err != nil {
		summary = []byte("[]")
	}
	return fmt.Sprintf(systemPrompt, summary)
}
