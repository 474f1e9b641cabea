package wizard

import gormModels "helo-luxury-air/portal/internal/models/gorm"

// Flat charter tariff in USD. Distance and duration do not affect the quote.
const (
	BaseFee            int64 = 3500
	PassengerFee       int64 = 250
	GroundTransportFee int64 = 500
	CateringFee        int64 = 750
	ConciergeFee       int64 = 1000
)

const (
	MinPassengers = 1
	MaxPassengers = 10
)

// ClampPassengers pins n into [MinPassengers, MaxPassengers].
func ClampPassengers(n int) int {
	if n < MinPassengers {
		return MinPassengers
	}
	if n > MaxPassengers {
		return MaxPassengers
	}
	return n
}

// EstimatePrice is a pure function of its inputs, non-decreasing in passengers
// and in the number of add-ons.
func EstimatePrice(helicopterSurcharge int64, passengers int, addOns gormModels.AddOns) int64 {
	price := BaseFee + helicopterSurcharge + int64(ClampPassengers(passengers))*PassengerFee
	if addOns.GroundTransportation {
		price += GroundTransportFee
	}
	if addOns.Catering {
		price += CateringFee
	}
	if addOns.ConciergeService {
		price += ConciergeFee
	}
	return price
}
