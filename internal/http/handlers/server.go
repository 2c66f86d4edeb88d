package handlers

import (
	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/http/ban"
	"github.com/rogerio-castellano/stock-ledger/internal/inventory"
)

// Server holds what the handlers need. Guard may be nil, in which case
// failed logins are never throttled.
type Server struct {
	svc   *inventory.Service
	gate  *auth.Gate
	guard *ban.Guard
}

func NewServer(svc *inventory.Service, gate *auth.Gate, guard *ban.Guard) *Server {
	return &Server{svc: svc, gate: gate, guard: guard}
}
