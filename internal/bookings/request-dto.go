package bookings

// BookingListQuery carries the list filters and pagination for booking lists.
type BookingListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	Country  string `form:"country"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`   // YYYY-MM-DD
}
