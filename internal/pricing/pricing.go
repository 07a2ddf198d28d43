package pricing

// ServiceType says where a grooming appointment takes place.
type ServiceType string

const (
	ServiceSalon ServiceType = "salon"
	ServiceHome  ServiceType = "home"
)

func (s ServiceType) IsValid() bool {
	return s == ServiceSalon || s == ServiceHome
}

// Total computes the amount charged for a grooming appointment.
// basePrice is the groomer's flat price, or the selected package's price when
// a package is chosen (a package overrides the base price, it never adds to it).
// The home-service surcharge applies only to home appointments.
// Negative inputs are clamped to zero.
func Total(basePrice int, serviceType ServiceType, homeServiceCost int) int {
	if basePrice < 0 {
		basePrice = 0
	}
	if homeServiceCost < 0 {
		homeServiceCost = 0
	}
	if serviceType == ServiceHome {
		return basePrice + homeServiceCost
	}
	return basePrice
}
