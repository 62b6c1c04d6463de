package dto

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	NIT     string `json:"nit" validate:"required,min=1,max=50"`
	Name    string `json:"nombre_proveedor" validate:"required,min=1,max=200"`
	Company string `json:"empresa" validate:"required,min=1,max=200"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	NIT     *string `json:"nit" validate:"omitempty,min=1,max=50"`
	Name    *string `json:"nombre_proveedor" validate:"omitempty,min=1,max=200"`
	Company *string `json:"empresa" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"telefono"`
	Address *string `json:"direccion"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      int64  `json:"id_proveedor"`
	NIT     string `json:"nit"`
	Name    string `json:"nombre_proveedor"`
	Company string `json:"empresa"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}
