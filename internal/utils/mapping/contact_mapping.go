package mapping

import (
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/models"
)

// ToModelContact converts a domain contact to its persistence row.
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		Ref:         d.Ref,
		Kind:        string(d.Kind),
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
		DeletedBy:   d.DeletedBy,
	}
}

// ToDomainContact converts a persistence contact row to the domain form.
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		Ref:         m.Ref,
		Kind:        domain.ContactKind(m.Kind),
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		SoftDelete:  domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}

// ToModelAccount converts a domain account to its persistence row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Ref:         d.Ref,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
		DeletedBy:   d.DeletedBy,
	}
}

// ToDomainAccount converts a persistence account row to the domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Ref:         m.Ref,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		SoftDelete:  domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}

// ToModelUser converts a domain user to its persistence row.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Ref:          d.Ref,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
		DeletedBy:    d.DeletedBy,
	}
}

// ToDomainUser converts a persistence user row to the domain form.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Ref:          m.Ref,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		SoftDelete:   domain.SoftDelete{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy},
	}
}
