// Package blob persists named JSON documents to durable local storage.
//
// Every piece of storefront state (catalog, cart, orders, session) lives
// under one well-known key. Readers must always get a usable value back, so
// Load substitutes a caller-supplied default whenever the key is missing,
// the backend fails, or the stored bytes do not decode; Save is best-effort
// and never reports failure to the caller. In-memory state stays
// authoritative for the rest of the run either way.
package blob

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Well-known document keys. There is no transaction across keys: a crash
// between two saves can leave the documents mutually inconsistent.
const (
	KeyCatalog = "catalog"
	KeyCart    = "cart"
	KeyOrders  = "orders"
	KeySession = "session"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, doc []byte) error
	Ping(ctx context.Context) error
}

// Load reads and decodes the document under key, falling back to def on a
// missing key, a storage error, or undecodable bytes.
func Load[T any](ctx context.Context, s Store, log *zap.Logger, key string, def T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		if log != nil {
			log.Warn("blob read failed, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		if log != nil {
			log.Warn("blob undecodable, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	return v
}

// Save encodes v and writes it under key. Failures are logged and swallowed.
func Save[T any](ctx context.Context, s Store, log *zap.Logger, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		if log != nil {
			log.Warn("blob encode failed", zap.String("key", key), zap.Error(err))
		}
		return
	}
	if err := s.Put(ctx, key, raw); err != nil {
		if log != nil {
			log.Warn("blob write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
