package dtos

import (
	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
)

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BookingCreateRequest books in one call what the wizard collects over four steps.
type BookingCreateRequest struct {
	PickupLocationID  string            `json:"pickupLocationId"`
	DropoffLocationID string            `json:"dropoffLocationId"`
	HelicopterID      string            `json:"helicopterId"`
	Passengers        int               `json:"passengers"`
	DepartureDate     string            `json:"departureDate"`
	DepartureTime     string            `json:"departureTime"`
	AddOns            gormModels.AddOns `json:"addOns"`
	SpecialRequests   string            `json:"specialRequests"`
}

type BookingStatusRequest struct {
	Status constants.BookingStatus `json:"status"`
}

// BookingPatchRequest carries admin edits; nil fields are left untouched.
type BookingPatchRequest struct {
	Status          *constants.BookingStatus `json:"status,omitempty"`
	DepartureDate   *string                  `json:"departureDate,omitempty"`
	DepartureTime   *string                  `json:"departureTime,omitempty"`
	SpecialRequests *string                  `json:"specialRequests,omitempty"`
	HelicopterID    *string                  `json:"helicopterId,omitempty"`
}

type AircraftStatusRequest struct {
	Status constants.AircraftStatus `json:"status"`
}

type MaintenanceRequest struct {
	Date string `json:"maintenance_date"`
}

// ProfilePatchRequest is a partial profile update; admins may also set role and tier.
type ProfilePatchRequest struct {
	FirstName        *string                   `json:"firstName,omitempty"`
	LastName         *string                   `json:"lastName,omitempty"`
	PhoneNumber      *string                   `json:"phoneNumber,omitempty"`
	Address          *AddressPayload           `json:"address,omitempty"`
	EmergencyContact *EmergencyContactPayload  `json:"emergencyContact,omitempty"`
	Preferences      *PreferencesPayload       `json:"preferences,omitempty"`
	Role             *constants.Role           `json:"role,omitempty"`
	MembershipTier   *constants.MembershipTier `json:"membershipTier,omitempty"`
}

type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type EmergencyContactPayload struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phoneNumber"`
}

type PreferencesPayload struct {
	Notifications   bool `json:"notifications"`
	MarketingEmails bool `json:"marketingEmails"`
	DarkMode        bool `json:"darkMode"`
}

type SavedLocationRequest struct {
	Name      string                      `json:"name"`
	Address   string                      `json:"address"`
	Latitude  float64                     `json:"latitude"`
	Longitude float64                     `json:"longitude"`
	Type      constants.SavedLocationType `json:"type"`
}

type PaymentMethodRequest struct {
	Type       constants.PaymentMethodType `json:"type"`
	LastFour   string                      `json:"lastFour"`
	ExpiryDate string                      `json:"expiryDate,omitempty"`
	IsDefault  bool                        `json:"isDefault"`
	CardBrand  constants.CardBrand         `json:"cardBrand,omitempty"`
}
