// Package watch bridges Firestore live queries to the websocket hub. Each
// collection gets its own snapshot listener; the listener state is owned
// here and cancelled explicitly, never left dangling when replaced.
package watch

import (
	"context"
	"sync"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smartasset-backend/internal/api/ws"
	"smartasset-backend/internal/logger"
)

// Manager owns the per-collection snapshot listeners.
type Manager struct {
	client *cf.Client
	hub    *ws.Hub

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager(client *cf.Client, hub *ws.Hub) *Manager {
	return &Manager{
		client:  client,
		hub:     hub,
		cancels: make(map[string]context.CancelFunc),
	}
}

// WatchAll starts listeners for every collection the UI renders live.
func (m *Manager) WatchAll(ctx context.Context) {
	m.Watch(ctx, "assets", "ASSET")
	m.Watch(ctx, "borrowRequests", "REQUEST")
	m.Watch(ctx, "deviceLocations", "DEVICE")
}

// Watch subscribes to a collection and broadcasts its changes with the
// given event prefix. A listener already running for the collection is
// cancelled first, so a collection never has two live listeners.
func (m *Manager) Watch(ctx context.Context, collection, prefix string) {
	m.mu.Lock()
	if cancel, ok := m.cancels[collection]; ok {
		cancel()
	}
	wctx, cancel := context.WithCancel(ctx)
	m.cancels[collection] = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(wctx, collection, prefix)
}

// Stop cancels every listener and waits for them to drain.
func (m *Manager) Stop() {
	m.mu.Lock()
	for name, cancel := range m.cancels {
		cancel()
		delete(m.cancels, name)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context, collection, prefix string) {
	defer m.wg.Done()

	log := logger.WithComponent("watch").With("collection", collection)
	iter := m.client.Collection(collection).Snapshots(ctx)
	defer iter.Stop()

	log.Info("snapshot listener started")
	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				log.Info("snapshot listener stopped")
				return
			}
			log.Error("snapshot listener failed", "error", err)
			return
		}
		for _, change := range snap.Changes {
			m.hub.Broadcast(ws.Event{
				Type: prefix + suffixFor(change.Kind),
				Data: payload(change),
			})
		}
	}
}

func suffixFor(kind cf.DocumentChangeKind) string {
	switch kind {
	case cf.DocumentAdded:
		return "_ADDED"
	case cf.DocumentModified:
		return "_MODIFIED"
	case cf.DocumentRemoved:
		return "_REMOVED"
	}
	return "_CHANGED"
}

func payload(change cf.DocumentChange) map[string]interface{} {
	// Removed documents have no data left to send.
	if change.Kind == cf.DocumentRemoved {
		return map[string]interface{}{"id": change.Doc.Ref.ID}
	}
	return map[string]interface{}{
		"id":   change.Doc.Ref.ID,
		"data": change.Doc.Data(),
	}
}
