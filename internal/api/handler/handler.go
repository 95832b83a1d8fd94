package handler

import (
	"github.com/dungvu242k3/XoXo-sub001/internal/store"
)

// Handler is the thin HTTP surface over the entity store. It never talks to
// the remote sync client directly.
type Handler struct {
	store *store.Store
}

func New(st *store.Store) *Handler { return &Handler{store: st} }
