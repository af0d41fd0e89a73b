package matching

import (
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Rank отбирает активных подрядчиков, покрывающих postcode, и сортирует
// по BookedCount по возрастанию. Сортировка стабильная: при равенстве
// сохраняется порядок входа (репозиторий отдает подрядчиков по created_at).
func Rank(contractors []*domain.Contractor, pc domain.Postcode) []*domain.Contractor {
	eligible := make([]*domain.Contractor, 0, len(contractors))
	for _, c := range contractors {
		if c == nil || !c.IsActive || !c.Covers(pc) {
			continue
		}
		eligible = append(eligible, c)
	}

	slices.SortStableFunc(eligible, func(a, b *domain.Contractor) int {
		return a.BookedCount - b.BookedCount
	})
	return eligible
}

// FindCandidates возвращает ID подрядчиков в порядке Rank
func FindCandidates(contractors []*domain.Contractor, pc domain.Postcode) []uuid.UUID {
	ranked := Rank(contractors, pc)
	ids := make([]uuid.UUID, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.ID)
	}
	return ids
}
