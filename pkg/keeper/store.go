package keeper

import (
	"context"

	"searchops/keeper/pkg/document"
)

// Token is the optimistic-concurrency token attached to a remote ISM policy
// at read time. Echoing it back on update guarantees the write applies only
// if no intervening remote write occurred. A nil token means unconditional
// write (create).
type Token struct {
	SeqNo       int64
	PrimaryTerm int64
}

// Entity is a named, normalized document as held by a store. LastUpdated is
// the server-side modification time in unix seconds, zero when the store does
// not track one. Token is set only by stores that support conditional
// updates.
type Entity struct {
	Name        string
	Document    document.Document
	LastUpdated int64
	Token       *Token
}

// Remote is the kind-agnostic capability a remote entity store exposes. Both
// index templates and ISM policies implement it, which keeps the Reconciler
// free of per-kind branching.
type Remote interface {
	// List returns all entities with server bookkeeping fields already
	// stripped. Individual malformed entries are skipped, not fatal.
	List(ctx context.Context) ([]Entity, error)

	// Get returns a single entity by name, or ErrNotFound.
	Get(ctx context.Context, name string) (*Entity, error)

	// Put creates or updates an entity. A non-nil token makes the write
	// conditional; a stale token yields ErrConflict. Stores that do not
	// support preconditions ignore the token.
	Put(ctx context.Context, name string, doc document.Document, token *Token) error

	// Delete removes an entity by name.
	Delete(ctx context.Context, name string) error

	// Normalize strips any server bookkeeping fields this kind embeds in a
	// bare document body. Applied to locally loaded documents before
	// comparison so hand-copied metadata never shows up as a diff.
	Normalize(doc document.Document) document.Document
}

// Local is the durable record of desired state: a directory of
// one-file-per-entity structured text documents.
type Local interface {
	// Load reads the document stored under name, or ErrNotFound.
	Load(name string) (document.Document, error)

	// Save persists doc under name and returns the file path written.
	Save(name string, doc document.Document) (string, error)

	// List returns entity names matching the optional glob pattern, sorted.
	List(pattern string) ([]string, error)
}
