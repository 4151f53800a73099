package suppliers

type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
	Notes         *string `json:"notes"`
}
