// Package chat implements the message-append protocol: one user message
// in, one model reply out, with the session collection persisted before
// and after the generation call.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/lo"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/genai"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/store"
)

// Generator produces a reply for a prompt with prior turns and an optional
// inline image. Satisfied by *genai.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []genai.Turn, image string) (string, error)
}

// Exchange drives the append protocol against one store and one generator.
// At most one Send is in flight at a time; further calls are rejected with
// ErrBusy until the first completes.
type Exchange struct {
	store *store.Store
	gen   Generator

	mu       sync.Mutex
	inFlight bool
}

// NewExchange creates an exchange over the given store and generator.
func NewExchange(st *store.Store, gen Generator) *Exchange {
	return &Exchange{store: st, gen: gen}
}

// Busy reports whether a generation request is currently in flight.
func (e *Exchange) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// Send appends a user message built from text and the optional image to
// the session identified by activeID (or to a freshly created session when
// activeID is empty or unknown), persists, then requests a reply and
// appends it on success. It returns the id of the session that received
// the message.
//
// The user's message is persisted before the network call, so it survives
// a generation failure. On failure the error is returned for transient
// display; the transcript keeps only the user message.
func (e *Exchange) Send(ctx context.Context, activeID, text, image string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == "" {
		return "", apierrors.ErrEmptyInput
	}

	if !e.acquire() {
		return "", apierrors.ErrBusy
	}
	defer e.release()

	userMsg := models.NewUserMessage(text, image)

	state := e.store.Load()
	sessions := state.Sessions

	var session models.ChatSession
	idx := -1
	if activeID != "" {
		_, idx, _ = lo.FindIndexOf(sessions, func(s models.ChatSession) bool {
			return s.ID == activeID
		})
	}

	if idx < 0 {
		// Lazily create a session on the first message; new sessions go
		// to the head of the collection.
		session = models.NewChatSession(userMsg)
		sessions = append([]models.ChatSession{session}, sessions...)
	} else {
		session = sessions[idx]
		session.Append(userMsg)
		sessions[idx] = session
	}

	if err := e.store.SaveSessions(sessions); err != nil {
		return session.ID, err
	}

	// History excludes the message just appended; it becomes the new user
	// turn inside the generator.
	history := genai.HistoryFromMessages(session.Messages[:len(session.Messages)-1])

	reply, err := e.gen.Generate(ctx, text, history, image)
	if err != nil {
		slog.Error("generation failed", "session", session.ID, "error", err)
		return session.ID, err
	}

	e.appendReply(session.ID, models.NewModelMessage(reply))
	return session.ID, nil
}

// appendReply re-locates the session by id and appends the model message.
// State may have changed while the request was in flight, so the reply is
// applied against a fresh load.
func (e *Exchange) appendReply(sessionID string, msg models.Message) {
	state := e.store.Load()
	sessions := state.Sessions

	_, idx, ok := lo.FindIndexOf(sessions, func(s models.ChatSession) bool {
		return s.ID == sessionID
	})
	if !ok {
		// Session deleted while generating; drop the reply.
		slog.Warn("reply arrived for deleted session", "session", sessionID)
		return
	}

	sessions[idx].Append(msg)
	if err := e.store.SaveSessions(sessions); err != nil {
		slog.Error("failed to persist reply", "session", sessionID, "error", err)
	}
}

func (e *Exchange) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return false
	}
	e.inFlight = true
	return true
}

func (e *Exchange) release() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}
