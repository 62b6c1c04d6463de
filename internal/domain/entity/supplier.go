package entity

// Supplier representa un proveedor (empresa externa). NIT es único.
type Supplier struct {
	ID      int64
	NIT     string
	Name    string // persona de contacto
	Company string
	Phone   string
	Address string
}
