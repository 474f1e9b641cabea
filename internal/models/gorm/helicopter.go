package gorm

import (
	"strings"
	"time"

	"helo-luxury-air/portal/internal/constants"

	orm "gorm.io/gorm"
)

type Helicopter struct {
	ID              string                   `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name            string                   `gorm:"column:name" json:"name"`
	Make            string                   `gorm:"column:make" json:"make"`
	Model           string                   `gorm:"column:model" json:"model"`
	Year            int                      `gorm:"column:year" json:"year"`
	Registration    string                   `gorm:"column:registration" json:"registration,omitempty"`
	Capacity        int                      `gorm:"column:capacity" json:"capacity"`
	Range           int                      `gorm:"column:range_miles" json:"range"`
	CruiseSpeed     int                      `gorm:"column:cruise_speed" json:"cruiseSpeed"`
	MaxAltitude     int                      `gorm:"column:max_altitude" json:"maxAltitude"`
	Status          constants.AircraftStatus `gorm:"column:status;type:varchar(16);index" json:"status"`
	ImageURL        string                   `gorm:"column:image_url" json:"imageUrl,omitempty"`
	FeatureList     string                   `gorm:"column:features" json:"-"`
	Surcharge       int64                    `gorm:"column:surcharge" json:"surcharge"`
	LastMaintenance *time.Time               `gorm:"column:last_maintenance" json:"lastMaintenance,omitempty"`
	NextMaintenance *time.Time               `gorm:"column:next_maintenance" json:"nextMaintenance,omitempty"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Features []string `gorm:"-" json:"features"`
}

func (Helicopter) TableName() string {
	return "helicopters"
}

// BeforeSave flattens the feature list into a single column.
func (h *Helicopter) BeforeSave(*orm.DB) error {
	h.FeatureList = strings.Join(h.Features, "|")
	return nil
}

// AfterFind restores the feature list.
func (h *Helicopter) AfterFind(*orm.DB) error {
	h.Features = nil
	if h.FeatureList != "" {
		h.Features = strings.Split(h.FeatureList, "|")
	}
	return nil
}
