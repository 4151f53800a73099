package models

type Supplier struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	ContactPerson string `json:"contact_person,omitempty" db:"contact_person"`
	Email         string `json:"email,omitempty" db:"email"`
	Phone         string `json:"phone,omitempty" db:"phone"`
	Address       string `json:"address,omitempty" db:"address"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	Notes         string `json:"notes,omitempty" db:"notes"`
}

func (s *Supplier) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "supplier",
	}
}
