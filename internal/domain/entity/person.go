package entity

import "time"

// Roles conocidos del sistema (tabla roles; asignación vía persona_rol).
const (
	RoleAdministrator = "Administrador"
	RoleManager       = "Gerente"
	RoleAccountant    = "Contador"
	RoleAssistant     = "Auxiliar"
	RoleLogistics     = "Personal de Logistica"
)

// Person representa un usuario del sistema. Email y CI son únicos.
type Person struct {
	ID              int64
	FirstName       string
	PaternalSurname string
	MaternalSurname string
	CI              string
	Email           string
	PasswordHash    string // bcrypt hash, nunca plano en dominio después de persistir
	BirthDate       *time.Time
	Role            string // nombre del rol asignado (vacío si no tiene)
}

// FullName devuelve el nombre completo para presentación.
func (p *Person) FullName() string {
	name := p.FirstName + " " + p.PaternalSurname
	if p.MaternalSurname != "" {
		name += " " + p.MaternalSurname
	}
	return name
}

// Role representa un rol asignable a personas.
type Role struct {
	ID          int64
	Name        string
	Description string
}
