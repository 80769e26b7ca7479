package dto

type CreateBookingRequest struct {
	CompanionID     uint     `json:"companion_id" validate:"required"`
	Activity        string   `json:"activity" validate:"required"`
	Date            string   `json:"date" validate:"required"` // YYYY-MM-DD
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	Duration        float64  `json:"duration" validate:"required,gte=0.5"`
	LocationAddress string   `json:"location_address,omitempty"`
	LocationCity    string   `json:"location_city,omitempty"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	SpecialRequests string   `json:"special_requests,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"` // cancellation reason
}

type CheckEventRequest struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

type CreateIntentRequest struct {
	BookingID uint `json:"booking_id" validate:"required"`
}

type ConfirmPaymentRequest struct {
	BookingID uint   `json:"booking_id" validate:"required"`
	Reference string `json:"reference" validate:"required"` // processor-issued
}

type WalletPayRequest struct {
	BookingID uint `json:"booking_id" validate:"required"`
}

type TopupRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference string  `json:"reference,omitempty"` // processor-issued, optional
}

type CreateReviewRequest struct {
	BookingID uint     `json:"booking_id" validate:"required"`
	Rating    int      `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string   `json:"comment,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type UpdateCompanionRequest struct {
	ActivityCategories []string           `json:"activity_categories,omitempty"`
	AvailabilityDays   []string           `json:"availability_days,omitempty"`
	AvailabilitySlots  []TimeSlot         `json:"availability_slots,omitempty"`
	Timezone           *string            `json:"timezone,omitempty"`
	HourlyRate         *float64           `json:"hourly_rate,omitempty"`
	ActivityRates      map[string]float64 `json:"activity_rates,omitempty"`
	Currency           *string            `json:"currency,omitempty"`
	IsAvailable        *bool              `json:"is_available,omitempty"`
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
