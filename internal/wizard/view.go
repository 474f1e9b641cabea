package wizard

import "time"

// View is the client-facing snapshot of a draft.
type View struct {
	ID             string        `json:"id"`
	Step           Step          `json:"step"`
	StepName       string        `json:"stepName"`
	Locations      LocationsStep `json:"locations"`
	Aircraft       AircraftStep  `json:"aircraft"`
	Schedule       ScheduleStep  `json:"schedule"`
	Errors         FieldErrors   `json:"errors"`
	EstimatedPrice int64         `json:"estimatedPrice"`
	Options        Catalog       `json:"options"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (w *Wizard) View() View {
	return View{
		ID:             w.ID,
		Step:           w.step,
		StepName:       w.step.String(),
		Locations:      w.locations,
		Aircraft:       w.aircraft,
		Schedule:       w.schedule,
		Errors:         w.Errors(),
		EstimatedPrice: w.price,
		Options:        w.catalog,
		UpdatedAt:      w.UpdatedAt,
	}
}
