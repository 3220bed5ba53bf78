package entity

import "time"

// Plantel es una sede u unidad organizacional. Los usuarios pertenecen a lo
// más a un plantel; los admins pueden administrar varios (relación M2M).
type Plantel struct {
	ID          string
	Name        string
	Label       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlantelAdmin es una asignación admin↔plantel.
type PlantelAdmin struct {
	PlantelID string
	UserID    string
	CreatedAt time.Time
}
