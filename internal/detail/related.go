// Package detail derives everything the fragrance detail view shows beyond the
// raw record: related fragrances, the generated description and ranking bars.
package detail

import "github.com/scentdex/scentdex-server/internal/domain"

// SimilarThreshold is the number of shared notes that makes two records similar.
const SimilarThreshold = 3

// Similar returns every other record sharing at least SimilarThreshold
// normalized notes with f, in catalog order. A record without notes has no similar records.
func Similar(f *domain.Fragrance, all []domain.Fragrance) []*domain.Fragrance {
	focal := f.NoteKeys()
	if len(focal) == 0 {
		return nil
	}

	var out []*domain.Fragrance
	for i := range all {
		candidate := &all[i]
		if candidate.ID == f.ID {
			continue
		}
		if sharesNotes(candidate, focal) {
			out = append(out, candidate)
		}
	}
	return out
}

// sharesNotes counts distinct candidate notes found in focal and stops at the threshold.
func sharesNotes(candidate *domain.Fragrance, focal map[string]struct{}) bool {
	seen := make(map[string]struct{}, SimilarThreshold)
	for n := range candidate.AllNotes() {
		key := n.Key()
		if _, ok := focal[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if len(seen) >= SimilarThreshold {
			return true
		}
	}
	return false
}

// SameBrand returns every other record with exactly the same brand, in catalog order.
func SameBrand(f *domain.Fragrance, all []domain.Fragrance) []*domain.Fragrance {
	var out []*domain.Fragrance
	for i := range all {
		if all[i].ID != f.ID && all[i].Brand == f.Brand {
			out = append(out, &all[i])
		}
	}
	return out
}
