package entity

import "time"

// Puesto es una entrada del catálogo de puestos de trabajo. NameKey es la
// forma normalizada (sin acentos, minúsculas) con la que se deduplica.
type Puesto struct {
	ID        string
	Name      string
	NameKey   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
