package shared

import "context"

// Repository is the read/delete surface every aggregate repository offers
type Repository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id ID) (*T, error)
	ExistsByID(ctx context.Context, id ID) (bool, error)
	Delete(ctx context.Context, id ID) error
}

// UniqueIDs returns ids with duplicates and zero values removed, keeping first-seen order
func UniqueIDs(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
