package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationNote *string `json:"cancellationNote,omitempty"`
}
