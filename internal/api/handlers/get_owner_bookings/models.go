package get_owner_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
)

// ParseQuery собирает фильтр листинга из query-параметров.
// Поддерживаются: startDate, endDate (YYYY-MM-DD), status, includeInactive.
func ParseQuery(ownerID int64, query url.Values) (*models.GetOwnerBookingsRequest, error) {
	req := &models.GetOwnerBookingsRequest{OwnerID: ownerID}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req, nil
}
