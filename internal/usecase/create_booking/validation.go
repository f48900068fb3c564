package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Проверки, зависящие от профиля владельца и состояния календаря,
// выполняются отдельно внутри транзакции.
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrValidation)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrValidation)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrValidation, err)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrValidation)
	}

	if strings.TrimSpace(req.RequesterName) == "" {
		return fmt.Errorf("%w: requesterName is required", ErrValidation)
	}

	if !isValidEmail(req.RequesterEmail) {
		return fmt.Errorf("%w: requesterEmail is not a valid email", ErrValidation)
	}

	if strings.TrimSpace(req.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if len(req.Subject) > domain.MaxSubjectLength {
		return fmt.Errorf("%w: subject exceeds %d characters", ErrValidation, domain.MaxSubjectLength)
	}
	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", ErrValidation, domain.MaxLocationLength)
	}

	return validateInvitees(req.Invitees)
}

// validateInvitees проверяет дополнительных участников: непустое имя,
// корректный email, уникальность email внутри бронирования
func validateInvitees(invitees []domain.Invitee) error {
	if len(invitees) > domain.MaxInviteesPerBooking {
		return fmt.Errorf("%w: at most %d invitees allowed", ErrValidation, domain.MaxInviteesPerBooking)
	}

	seen := make(map[string]struct{}, len(invitees))
	for i, inv := range invitees {
		if strings.TrimSpace(inv.Name) == "" {
			return fmt.Errorf("%w: invitees[%d].name is required", ErrValidation, i)
		}
		if !isValidEmail(inv.Email) {
			return fmt.Errorf("%w: invitees[%d].email is not a valid email", ErrValidation, i)
		}

		key := strings.ToLower(inv.Email)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: invitees[%d].email duplicates another invitee", ErrValidation, i)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func isValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
