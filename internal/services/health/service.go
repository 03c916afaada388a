package health

import (
	"context"
	"time"

	"placement-backend/internal/shared/storage/kv"
)

const pingTimeout = 2 * time.Second

// Service reports process and storage health.
type Service struct {
	Store   kv.Store
	Backend string
}

// NewService constructs a new health service.
func NewService(store kv.Store, backend string) *Service {
	return &Service{Store: store, Backend: backend}
}

// Status is the health payload.
type Status struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend"`
	Storage string `json:"storage"`
}

// Status pings the key-value store.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Backend: s.Backend, Storage: "ok"}
	if s.Store == nil {
		out.Storage = "unconfigured"
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		out.OK = false
		out.Storage = "unreachable"
	}
	return out
}
