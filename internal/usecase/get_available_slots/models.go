package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Postcode        string    // Postcode клиента, полный или фрагмент
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность уборки
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	Postcode        string
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный слот и подрядчики, которые могут его взять (в порядке ранжирования)
type Slot struct {
	Start         time.Time
	End           time.Time
	ContractorIDs []uuid.UUID
}

// CandidatesRequest запрос списка подходящих подрядчиков
type CandidatesRequest struct {
	Postcode string
}

// CandidatesResponse ID подрядчиков, лучший первым
type CandidatesResponse struct {
	Postcode      string
	ContractorIDs []uuid.UUID
}
