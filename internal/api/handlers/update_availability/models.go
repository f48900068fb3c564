package update_availability

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	Date   string                  `json:"date"` // "2025-10-15"
	Ranges []models.TimeRangeInput `json:"ranges"`
	Blocks []models.TimeBlockInput `json:"blocks,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(ownerID int64) (*models.UpdateDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.UpdateDayRequest{
		OwnerID: ownerID,
		Date:    date,
		Ranges:  r.Ranges,
		Blocks:  r.Blocks,
	}, nil
}
