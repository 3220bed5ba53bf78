package repository

import "github.com/talentohumano/expediente-api/internal/domain/entity"

// ChecklistRepository define el puerto de persistencia para ChecklistItem.
type ChecklistRepository interface {
	// Upsert crea el registro de (usuario, tipo) o actualiza el existente;
	// nunca deja dos registros vivos para el mismo par.
	Upsert(item *entity.ChecklistItem) error
	GetByUserAndType(userID, tipo string) (*entity.ChecklistItem, error)
	ListByUser(userID string) ([]*entity.ChecklistItem, error)
	DeleteByUserAndType(userID, tipo string) error
	DeleteByUser(userID string) error
}

// DocumentRepository define el puerto de persistencia para Document.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	GetByUserAndType(userID, tipo string) (*entity.Document, error)
	ListByUser(userID string) ([]*entity.Document, error)
	Update(doc *entity.Document) error
	Delete(id string) error
	DeleteByUser(userID string) error
}

// SignatureRepository define el puerto de persistencia para Signature.
type SignatureRepository interface {
	Create(sig *entity.Signature) error
	GetByExternalID(externalID string) (*entity.Signature, error)
	GetByUserAndType(userID, tipo string) (*entity.Signature, error)
	ListByUser(userID string) ([]*entity.Signature, error)
	Update(sig *entity.Signature) error
	DeleteByUser(userID string) error
}
