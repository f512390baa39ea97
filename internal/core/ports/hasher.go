package ports

// Hasher defines the interface for computing cache keys.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Hash returns a stable digest of fields. Map keys are hashed in sorted order,
	// so the digest does not depend on insertion order.
	Hash(fields map[string]any) (string, error)
}
