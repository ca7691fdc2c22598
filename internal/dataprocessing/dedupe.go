package dataprocessing

import "aadhaarcli/pkg/contracts/domain"

// Deduplicate removes exact duplicates, keeping the first occurrence of each
// record in encounter order. Identity spans all canonical fields including
// Count; rows differing only in Count are distinct. The operation is
// idempotent.
func Deduplicate(records []domain.TransactionRecord) (unique []domain.TransactionRecord, removed int) {
	seen := make(map[string]struct{}, len(records))
	unique = make([]domain.TransactionRecord, 0, len(records))

	for _, rec := range records {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	return unique, removed
}
