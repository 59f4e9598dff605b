package port

import "context"

type StateRepository interface {
	// Load returns the persisted state blob for a session key, or nil when
	// nothing has been saved yet
	Load(ctx context.Context, key string) ([]byte, error)

	// Save overwrites the persisted state blob for a session key
	Save(ctx context.Context, key string, payload []byte) error

	// Delete removes the persisted state blob (logout)
	Delete(ctx context.Context, key string) error
}
