package dto

import (
	"github.com/shopspring/decimal"

	"github.com/talentohumano/expediente-api/internal/domain/entity"
)

// NewUserResponse mapea la entidad a su DTO de salida (sin hash).
func NewUserResponse(u *entity.User) UserResponse {
	sueldo := ""
	if !u.Sueldo.Equal(decimal.Zero) {
		sueldo = u.Sueldo.StringFixed(2)
	}
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Active:     u.Active,
		IsApproved: u.IsApproved,
		PlantelID:  u.PlantelID,
		CURP:       u.CURP,
		RFC:        u.RFC,
		Address:    u.Address,
		HireDate:   u.HireDate,
		Puesto:     u.Puesto,
		Horario:    u.Horario,
		Sueldo:     sueldo,
		PhotoURL:   u.PhotoPath,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// NewPlantelResponse mapea la entidad Plantel a su DTO.
func NewPlantelResponse(p *entity.Plantel) PlantelResponse {
	return PlantelResponse{
		ID:          p.ID,
		Name:        p.Name,
		Label:       p.Label,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPuestoResponse mapea la entidad Puesto a su DTO.
func NewPuestoResponse(p *entity.Puesto) PuestoResponse {
	return PuestoResponse{
		ID:        p.ID,
		Name:      p.Name,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewDocumentoResponse mapea la entidad Document a su DTO. La URL servida es
// la ruta protegida, no la ruta física.
func NewDocumentoResponse(d *entity.Document) DocumentoResponse {
	return DocumentoResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		Type:          d.Type,
		Status:        d.Status,
		FileURL:       "/api/archivos/" + d.FilePath,
		Version:       d.Version,
		ReviewComment: d.ReviewComment,
		UploadedAt:    d.UploadedAt,
	}
}

// NewFirmaResponse mapea la entidad Signature a su DTO.
func NewFirmaResponse(s *entity.Signature) FirmaResponse {
	return FirmaResponse{
		ID:         s.ID,
		Type:       s.Type,
		Status:     s.Status,
		Provider:   s.Provider,
		ExternalID: s.ExternalID,
		SignedAt:   s.SignedAt,
	}
}

// NewChecklistItemResponse mapea la entidad ChecklistItem a su DTO.
func NewChecklistItemResponse(it *entity.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		Type:       it.Type,
		Required:   it.Required,
		AdminOnly:  it.AdminOnly,
		Fulfilled:  it.Fulfilled,
		DocumentID: it.DocumentID,
	}
}
