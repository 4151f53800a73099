package models

type Branch struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address,omitempty" db:"address"`
	Phone   string `json:"phone,omitempty" db:"phone"`
}

func (b *Branch) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   b.ID,
		ResourceType: "branch",
	}
}
