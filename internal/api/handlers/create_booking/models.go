package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	createBooking "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

// InviteeRequest участник встречи из запроса
type InviteeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`

	RequesterName  string  `json:"requesterName"`
	RequesterEmail string  `json:"requesterEmail"`
	RequesterPhone *string `json:"requesterPhone,omitempty"`
	Subject        string  `json:"subject"`
	Location       string  `json:"location,omitempty"`

	Invitees []InviteeRequest `json:"invitees,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	OwnerID         int64  `json:"ownerId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	RequesterName  string  `json:"requesterName"`
	RequesterEmail string  `json:"requesterEmail"`
	RequesterPhone *string `json:"requesterPhone,omitempty"`
	Subject        string  `json:"subject"`
	Location       string  `json:"location,omitempty"`

	Invitees []InviteeRequest `json:"invitees,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(ownerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	invitees := make([]domain.Invitee, 0, len(r.Invitees))
	for _, inv := range r.Invitees {
		invitees = append(invitees, domain.Invitee{
			Name:  inv.Name,
			Email: inv.Email,
		})
	}

	return &createBooking.Request{
		OwnerID:         ownerID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		RequesterName:   r.RequesterName,
		RequesterEmail:  r.RequesterEmail,
		RequesterPhone:  r.RequesterPhone,
		Subject:         r.Subject,
		Location:        r.Location,
		Invitees:        invitees,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	invitees := make([]InviteeRequest, 0, len(resp.Invitees))
	for _, inv := range resp.Invitees {
		invitees = append(invitees, InviteeRequest{
			Name:  inv.Name,
			Email: inv.Email,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		OwnerID:         resp.OwnerID,
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		RequesterName:   resp.RequesterName,
		RequesterEmail:  resp.RequesterEmail,
		RequesterPhone:  resp.RequesterPhone,
		Subject:         resp.Subject,
		Location:        resp.Location,
		Invitees:        invitees,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
