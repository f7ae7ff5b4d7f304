package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/models"
)

// Load levels for a time slot
const (
	LoadLow    = "low"
	LoadMedium = "medium"
	LoadHigh   = "high"
)

// slotDefinition is one of the five fixed daily pickup windows.
type slotDefinition struct {
	Time       string
	Capacity   int
	WasteTypes []string // waste types accepted; "all" accepts everything
}

// dailySlots is the static slot table. Capacity and allowed waste types do
// not vary by date.
var dailySlots = []slotDefinition{
	{Time: "08:00", Capacity: 5, WasteTypes: []string{models.WasteGeneral, models.WasteRecyclable, models.WasteOrganic}},
	{Time: "10:00", Capacity: 8, WasteTypes: []string{"all"}},
	{Time: "12:00", Capacity: 6, WasteTypes: []string{models.WasteGeneral, models.WasteRecyclable}},
	{Time: "14:00", Capacity: 8, WasteTypes: []string{"all"}},
	{Time: "16:00", Capacity: 5, WasteTypes: []string{models.WasteGeneral, models.WasteBulk}},
}

// TimeSlot is one bookable window with remaining capacity for a date.
type TimeSlot struct {
	Time              string `json:"time"`
	AvailableCapacity int    `json:"available_capacity"`
	LoadLevel         string `json:"load_level"`
	Recommended       bool   `json:"recommended"`
}

// TimeSlotService suggests pickup windows for a date. This is a plain
// filter/aggregate over the static slot table, not an optimizer.
type TimeSlotService struct {
	db *gorm.DB
}

// NewTimeSlotService creates a time slot service bound to db
func NewTimeSlotService(db *gorm.DB) *TimeSlotService {
	return &TimeSlotService{db: db}
}

// AvailableSlots returns the slots on date that accept wasteType and still
// have capacity left. Slots at or over capacity are excluded entirely.
func (s *TimeSlotService) AvailableSlots(date, wasteType string) ([]TimeSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewValidationError("date", "Invalid date format, expected YYYY-MM-DD.")
	}
	if wasteType == "" {
		wasteType = models.WasteGeneral
	}

	// Bookings that occupy capacity: appointments on the date that are
	// scheduled or underway.
	type slotCount struct {
		PreferredTime string
		Count         int
	}
	var counts []slotCount
	if err := s.db.Model(&models.Appointment{}).
		Select("preferred_time, count(*) as count").
		Where("preferred_date = ? AND status IN ?", date,
			[]string{models.StatusScheduled, models.StatusInProgress}).
		Group("preferred_time").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings := make(map[string]int, len(counts))
	for _, c := range counts {
		bookings[c.PreferredTime] = c.Count
	}

	available := make([]TimeSlot, 0, len(dailySlots))
	for _, slot := range dailySlots {
		if !slotAccepts(slot, wasteType) {
			continue
		}
		remaining := slot.Capacity - bookings[slot.Time]
		if remaining <= 0 {
			continue
		}

		level := LoadHigh
		switch {
		case remaining > 3:
			level = LoadLow
		case remaining > 1:
			level = LoadMedium
		}

		available = append(available, TimeSlot{
			Time:              slot.Time,
			AvailableCapacity: remaining,
			LoadLevel:         level,
			Recommended:       level == LoadLow,
		})
	}
	return available, nil
}

func slotAccepts(slot slotDefinition, wasteType string) bool {
	for _, t := range slot.WasteTypes {
		if t == "all" || t == wasteType {
			return true
		}
	}
	return false
}
