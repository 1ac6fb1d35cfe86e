package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-lms-auth/internal/infrastructure/kv"
	"github.com/go-lms-auth/internal/pkg/id"
)

// ClientContextCookie names the cookie identifying a client context.
// Each context gets its own tab-scoped store, so two browser tabs with
// different cookies behave like separate sessions unless the user
// chose to be remembered.
const ClientContextCookie = "lms_ctx"

type ctxKey int

const tabStoreKey ctxKey = iota

type tabEntry struct {
	store    *kv.MemStore
	lastSeen time.Time
}

// TabStores maps client context identifiers to their in-memory stores.
// Entries idle for an hour are dropped, which mirrors a closed tab.
type TabStores struct {
	mu      sync.Mutex
	entries map[string]*tabEntry
}

func NewTabStores() *TabStores {
	t := &TabStores{entries: make(map[string]*tabEntry)}
	go t.cleanup()
	return t
}

func (t *TabStores) get(ctxID string) *kv.MemStore {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[ctxID]; ok {
		e.lastSeen = time.Now()
		return e.store
	}
	e := &tabEntry{store: kv.NewMemStore(), lastSeen: time.Now()}
	t.entries[ctxID] = e
	return e.store
}

func (t *TabStores) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		t.mu.Lock()
		for ctxID, e := range t.entries {
			if time.Since(e.lastSeen) > time.Hour {
				delete(t.entries, ctxID)
			}
		}
		t.mu.Unlock()
	}
}

// Attach resolves the request's client context, minting a new
// identifier when the cookie is absent, and puts the matching
// tab-scoped store on the request context.
func (t *TabStores) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ctxID string
		if c, err := r.Cookie(ClientContextCookie); err == nil && c.Value != "" {
			ctxID = c.Value
		} else {
			ctxID = id.New()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientContextCookie,
				Value:    ctxID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), tabStoreKey, t.get(ctxID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TabStore returns the request's tab-scoped store. Requests that did
// not pass through Attach get a throwaway store.
func TabStore(ctx context.Context) kv.Store {
	if s, ok := ctx.Value(tabStoreKey).(*kv.MemStore); ok {
		return s
	}
	return kv.NewMemStore()
}
