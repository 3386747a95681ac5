package cancel_booking

// CancelBookingRequest HTTP request model. Тело запроса опционально.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
