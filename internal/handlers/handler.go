package handlers

import (
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"github.com/harentsoaR/clinic-api/internal/ws"
)

// Broadcaster is the piece of the hub the handlers need: fire-and-forget
// publish of one event to whoever is connected.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// Handler carries the collaborators every operation needs.
type Handler struct {
	Store      store.UserStore
	Tokens     *utils.TokenService
	Hub        Broadcaster
	BcryptCost int
	Log        zerolog.Logger
}

func NewHandler(s store.UserStore, tokens *utils.TokenService, hub Broadcaster, bcryptCost int, log zerolog.Logger) *Handler {
	return &Handler{
		Store:      s,
		Tokens:     tokens,
		Hub:        hub,
		BcryptCost: bcryptCost,
		Log:        log,
	}
}
