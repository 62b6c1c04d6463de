package repository

import "github.com/dquispe/almacen-api/internal/domain/entity"

// PersonRepository define el puerto de persistencia para Person y sus roles.
type PersonRepository interface {
	Create(person *entity.Person) error
	GetByID(id int64) (*entity.Person, error)
	GetByEmail(email string) (*entity.Person, error)
	GetByCI(ci string) (*entity.Person, error)
	Update(person *entity.Person) error
	List() ([]*entity.Person, error)
	Delete(id int64) error

	ListRoles() ([]*entity.Role, error)
	GetRoleByName(name string) (*entity.Role, error)
	// AssignRole reemplaza el rol actual de la persona.
	AssignRole(personID, roleID int64) error
	// ListByRoles devuelve personas cuyo rol está en names.
	ListByRoles(names []string) ([]*entity.Person, error)
}
