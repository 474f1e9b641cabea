package gorm

import (
	"time"

	"helo-luxury-air/portal/internal/constants"
)

type Address struct {
	Street  string `gorm:"column:street" json:"street"`
	City    string `gorm:"column:city" json:"city"`
	State   string `gorm:"column:state" json:"state"`
	ZipCode string `gorm:"column:zip_code" json:"zipCode"`
	Country string `gorm:"column:country" json:"country"`
}

type EmergencyContact struct {
	Name         string `gorm:"column:name" json:"name"`
	Relationship string `gorm:"column:relationship" json:"relationship"`
	PhoneNumber  string `gorm:"column:phone_number" json:"phoneNumber"`
}

type Preferences struct {
	Notifications   bool `gorm:"column:notifications;default:true" json:"notifications"`
	MarketingEmails bool `gorm:"column:marketing_emails;default:false" json:"marketingEmails"`
	DarkMode        bool `gorm:"column:dark_mode;default:false" json:"darkMode"`
}

// User is the full member profile; the session carries a trimmed copy.
type User struct {
	ID             string                    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Email          string                    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash   string                    `gorm:"column:password_hash" json:"-"`
	FirstName      string                    `gorm:"column:first_name" json:"firstName"`
	LastName       string                    `gorm:"column:last_name" json:"lastName"`
	Role           constants.Role            `gorm:"column:role;type:varchar(16)" json:"role"`
	MembershipTier *constants.MembershipTier `gorm:"column:membership_tier;type:varchar(16)" json:"membershipTier,omitempty"`
	PhoneNumber    string                    `gorm:"column:phone_number" json:"phoneNumber,omitempty"`

	Address          Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	Preferences      Preferences      `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// Relationships
	SavedLocations []SavedLocation `gorm:"foreignKey:UserID" json:"savedLocations,omitempty"`
	PaymentMethods []PaymentMethod `gorm:"foreignKey:UserID" json:"paymentMethods,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName is what the booking records show as the customer name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type SavedLocation struct {
	ID          string                      `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	UserID      string                      `gorm:"column:user_id;index" json:"-"`
	Name        string                      `gorm:"column:name" json:"name"`
	Address     string                      `gorm:"column:address" json:"address"`
	Coordinates Coordinates                 `gorm:"embedded" json:"coordinates"`
	Type        constants.SavedLocationType `gorm:"column:type;type:varchar(16)" json:"type"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (SavedLocation) TableName() string {
	return "saved_locations"
}

// AsLocation converts a saved location into the reference shape stored on bookings.
func (s SavedLocation) AsLocation() Location {
	return Location{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Coordinates: s.Coordinates,
		Type:        constants.LocationCustom,
	}
}

type PaymentMethod struct {
	ID         string                      `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	UserID     string                      `gorm:"column:user_id;index" json:"-"`
	Type       constants.PaymentMethodType `gorm:"column:type;type:varchar(16)" json:"type"`
	LastFour   string                      `gorm:"column:last_four" json:"lastFour"`
	ExpiryDate string                      `gorm:"column:expiry_date" json:"expiryDate,omitempty"`
	IsDefault  bool                        `gorm:"column:is_default" json:"isDefault"`
	CardBrand  constants.CardBrand         `gorm:"column:card_brand;type:varchar(16)" json:"cardBrand,omitempty"`
	CreatedAt  time.Time                   `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
