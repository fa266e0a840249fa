package dataset

import (
	"context"
	"math/rand"
	"sort"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
)

// Manifest is an ordered list of record ids.
type Manifest struct {
	ids []string
}

// BuildManifest lists every record in store in lexicographic order.
func BuildManifest(ctx context.Context, store record.Store) (*Manifest, error) {
	ids, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	ids = append([]string(nil), ids...)
	sort.Strings(ids)
	return &Manifest{ids: ids}, nil
}

// NewManifest wraps ids in the given order.
func NewManifest(ids []string) *Manifest {
	return &Manifest{ids: append([]string(nil), ids...)}
}

func (m *Manifest) Len() int { return len(m.ids) }

// ID returns the id at idx.
func (m *Manifest) ID(idx int) string { return m.ids[idx] }

// IDs returns a copy of the ids.
func (m *Manifest) IDs() []string { return append([]string(nil), m.ids...) }

// Sample returns n ids drawn without replacement by a generator seeded with
// seed, so the same seed and manifest always give the same subset in the same
// order.  When n is not positive or not below Len the manifest is returned
// unchanged.
func (m *Manifest) Sample(n int, seed int64) *Manifest {
	if n <= 0 || n >= len(m.ids) {
		return NewManifest(m.ids)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(m.ids))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = m.ids[perm[i]]
	}
	return &Manifest{ids: out}
}

//Personal.AI order the ending
