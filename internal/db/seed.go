package db

import (
	"context"
	"fmt"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/constants"
	gormModels "helo-luxury-air/portal/internal/models/gorm"
	"helo-luxury-air/portal/internal/wizard"

	"gorm.io/gorm"
)

// DemoAccount is a login the marketing site advertises.
type DemoAccount struct {
	Email    string
	Password string
	User     gormModels.User
}

func tier(t constants.MembershipTier) *constants.MembershipTier { return &t }

// DemoAccounts are the only credentials accepted out of the box.
var DemoAccounts = []DemoAccount{
	{
		Email:    "guest@flyhelo.one",
		Password: "guest123",
		User:     gormModels.User{ID: "guest-1", FirstName: "Guest", LastName: "User", Role: constants.RoleGuest},
	},
	{
		Email:    "member@flyhelo.one",
		Password: "member123",
		User: gormModels.User{
			ID: "member-1", FirstName: "Standard", LastName: "Member",
			Role: constants.RoleMember, MembershipTier: tier(constants.TierStandard),
			PhoneNumber: "+1 (555) 123-4567",
			Address: gormModels.Address{
				Street: "123 Park Avenue", City: "New York", State: "NY", ZipCode: "10001", Country: "USA",
			},
			EmergencyContact: gormModels.EmergencyContact{
				Name: "Jane Doe", Relationship: "Spouse", PhoneNumber: "+1 (555) 987-6543",
			},
			Preferences: gormModels.Preferences{Notifications: true, DarkMode: true},
		},
	},
	{
		Email:    "admin@flyhelo.one",
		Password: "admin123",
		User:     gormModels.User{ID: "admin-1", FirstName: "Operations", LastName: "Admin", Role: constants.RoleAdmin},
	},
}

// Seed loads the demo data set. It is a no-op when users already exist.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.WithContext(ctx).Model(&gormModels.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, acct := range DemoAccounts {
			hash, err := auth.HashPassword(acct.Password)
			if err != nil {
				return fmt.Errorf("failed to hash demo password: %w", err)
			}
			u := acct.User
			u.Email = acct.Email
			u.PasswordHash = hash
			u.CreatedAt = now.AddDate(0, -6, 0)
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to seed %s: %w", acct.Email, err)
			}
		}

		for _, u := range mockMembers(now) {
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to seed %s: %w", u.Email, err)
			}
		}

		for _, loc := range mockSavedLocations() {
			if err := tx.Create(&loc).Error; err != nil {
				return fmt.Errorf("failed to seed location %s: %w", loc.ID, err)
			}
		}

		for _, pm := range mockPaymentMethods() {
			if err := tx.Create(&pm).Error; err != nil {
				return fmt.Errorf("failed to seed payment method %s: %w", pm.ID, err)
			}
		}

		fleet := mockFleet(now)
		for i := range fleet {
			if err := tx.Create(&fleet[i]).Error; err != nil {
				return fmt.Errorf("failed to seed helicopter %s: %w", fleet[i].ID, err)
			}
		}

		for _, b := range mockBookings(now, fleet) {
			if err := tx.Create(&b).Error; err != nil {
				return fmt.Errorf("failed to seed booking %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

func mockMembers(now time.Time) []gormModels.User {
	return []gormModels.User{
		{
			ID: "user-2", Email: "sarah.smith@example.com", FirstName: "Sarah", LastName: "Smith",
			Role: constants.RoleMember, MembershipTier: tier(constants.TierPremium),
			PhoneNumber: "+1 (555) 222-3333", CreatedAt: now.AddDate(0, 0, -20),
		},
		{
			ID: "user-3", Email: "michael.johnson@example.com", FirstName: "Michael", LastName: "Johnson",
			Role: constants.RoleMember, MembershipTier: tier(constants.TierElite),
			PhoneNumber: "+1 (555) 444-5555", CreatedAt: now.AddDate(0, -3, 0),
		},
		{
			ID: "user-4", Email: "emily.brown@example.com", FirstName: "Emily", LastName: "Brown",
			Role: constants.RoleMember, MembershipTier: tier(constants.TierStandard),
			PhoneNumber: "+1 (555) 666-7777", CreatedAt: now.AddDate(0, 0, -3),
		},
	}
}

func mockSavedLocations() []gormModels.SavedLocation {
	return []gormModels.SavedLocation{
		{
			ID: "loc-1", UserID: "member-1", Name: "Home", Address: "123 Park Avenue, New York, NY 10001",
			Coordinates: gormModels.Coordinates{Latitude: 40.7128, Longitude: -74.006}, Type: constants.SavedLocationHome,
		},
		{
			ID: "loc-2", UserID: "member-1", Name: "Office", Address: "555 Madison Avenue, New York, NY 10022",
			Coordinates: gormModels.Coordinates{Latitude: 40.7624, Longitude: -73.9738}, Type: constants.SavedLocationWork,
		},
		{
			ID: "loc-3", UserID: "member-1", Name: "Hamptons House", Address: "789 Beach Road, East Hampton, NY 11937",
			Coordinates: gormModels.Coordinates{Latitude: 40.9646, Longitude: -72.1878}, Type: constants.SavedLocationFavorite,
		},
	}
}

func mockPaymentMethods() []gormModels.PaymentMethod {
	return []gormModels.PaymentMethod{
		{
			ID: "pm-1", UserID: "member-1", Type: constants.PaymentCreditCard, LastFour: "4242",
			ExpiryDate: "12/27", IsDefault: true, CardBrand: constants.CardVisa,
		},
		{
			ID: "pm-2", UserID: "member-1", Type: constants.PaymentCreditCard, LastFour: "1234",
			ExpiryDate: "10/28", CardBrand: constants.CardAmex,
		},
	}
}

func mockFleet(now time.Time) []gormModels.Helicopter {
	day := func(offset int) *time.Time {
		t := now.AddDate(0, 0, offset).Truncate(24 * time.Hour)
		return &t
	}
	return []gormModels.Helicopter{
		{
			ID: "h1", Name: "Luxury One", Make: "Airbus", Model: "H160", Year: 2022, Registration: "N160HL",
			Capacity: 8, Range: 500, CruiseSpeed: 160, MaxAltitude: 20000, Status: constants.AircraftAvailable,
			ImageURL: "/assets/helicopters/h160.jpg", Surcharge: 2000,
			Features:        []string{"WiFi", "Leather Seats", "Champagne Bar", "Entertainment System"},
			LastMaintenance: day(-45), NextMaintenance: day(45),
		},
		{
			ID: "h2", Name: "Executive Elite", Make: "Bell", Model: "525 Relentless", Year: 2023, Registration: "N525HL",
			Capacity: 16, Range: 575, CruiseSpeed: 175, MaxAltitude: 22000, Status: constants.AircraftAvailable,
			ImageURL: "/assets/helicopters/bell525.jpg", Surcharge: 3500,
			Features:        []string{"WiFi", "Conference Setup", "Premium Audio", "Gourmet Catering"},
			LastMaintenance: day(-30), NextMaintenance: day(60),
		},
		{
			ID: "h3", Name: "Coastal Cruiser", Make: "Sikorsky", Model: "S-76D", Year: 2021, Registration: "N760HL",
			Capacity: 12, Range: 450, CruiseSpeed: 155, MaxAltitude: 18000, Status: constants.AircraftInUse,
			ImageURL: "/assets/helicopters/s76d.jpg", Surcharge: 2500,
			Features:        []string{"Panoramic Windows", "Luxury Interior", "Noise Reduction"},
			LastMaintenance: day(-60), NextMaintenance: day(30),
		},
		{
			ID: "h4", Name: "City Hopper", Make: "Bell", Model: "429", Year: 2019, Registration: "N429HL",
			Capacity: 6, Range: 380, CruiseSpeed: 150, MaxAltitude: 16000, Status: constants.AircraftMaintenance,
			ImageURL: "/assets/helicopters/bell429.jpg", Surcharge: 1500,
			Features:        []string{"Leather Seats", "Noise Reduction"},
			LastMaintenance: day(-90), NextMaintenance: day(2),
		},
	}
}

func mockBookings(now time.Time, fleet []gormModels.Helicopter) []gormModels.Booking {
	surcharge := make(map[string]int64, len(fleet))
	for _, h := range fleet {
		surcharge[h.ID] = h.Surcharge
	}

	manhattan := gormModels.Location{
		ID: "hp-1", Name: "Manhattan Heliport", Address: "789 Hudson River, New York, NY 10011",
		Coordinates: gormModels.Coordinates{Latitude: 40.7061, Longitude: -74.0137}, Type: constants.LocationHeliport,
	}
	hamptons := gormModels.Location{
		ID: "ap-1", Name: "Hamptons Executive Airport", Address: "456 Airport Rd, East Hampton, NY 11937",
		Coordinates: gormModels.Coordinates{Latitude: 40.9646, Longitude: -72.2519}, Type: constants.LocationAirport,
	}
	downtown := gormModels.Location{
		ID: "hp-2", Name: "Downtown Heliport", Address: "123 Main St, New York, NY 10001",
		Coordinates: gormModels.Coordinates{Latitude: 40.7128, Longitude: -74.006}, Type: constants.LocationHeliport,
	}

	type row struct {
		id, userID, name, email string
		from, to                gormModels.Location
		daysOut, createdAgo     int
		time                    string
		pax                     int
		heli                    string
		addOns                  gormModels.AddOns
		status                  constants.BookingStatus
	}
	rows := []row{
		{"b1", "member-1", "Standard Member", "member@flyhelo.one", manhattan, hamptons, 14, 5, "10:00", 4, "h1",
			gormModels.AddOns{GroundTransportation: true}, constants.BookingConfirmed},
		{"b2", "user-2", "Sarah Smith", "sarah.smith@example.com", downtown, manhattan, 15, 4, "14:00", 2, "h2",
			gormModels.AddOns{}, constants.BookingPending},
		{"b3", "user-3", "Michael Johnson", "michael.johnson@example.com", hamptons, manhattan, 16, 3, "11:30", 6, "h3",
			gormModels.AddOns{Catering: true}, constants.BookingCancelled},
	}

	out := make([]gormModels.Booking, 0, len(rows))
	for _, r := range rows {
		created := now.AddDate(0, 0, -r.createdAgo)
		out = append(out, gormModels.Booking{
			ID:              r.id,
			UserID:          r.userID,
			CustomerName:    r.name,
			CustomerEmail:   r.email,
			PickupLocation:  r.from,
			DropoffLocation: r.to,
			DepartureDate:   now.AddDate(0, 0, r.daysOut).Format(wizard.DateLayout),
			DepartureTime:   r.time,
			PassengerCount:  r.pax,
			HelicopterID:    r.heli,
			AddOns:          r.addOns,
			Price:           wizard.EstimatePrice(surcharge[r.heli], r.pax, r.addOns),
			Status:          r.status,
			CreatedAt:       created,
			UpdatedAt:       created,
		})
	}
	return out
}
