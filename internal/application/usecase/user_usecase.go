package usecase

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y roles. El registro y el login viven
// en el paquete auth.
type UserUseCase struct {
	personRepo repository.PersonRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(personRepo repository.PersonRepository) *UserUseCase {
	return &UserUseCase{personRepo: personRepo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	person, err := uc.personRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	out := toUserResponse(person)
	return &out, nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.personRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toUserResponse(p))
	}
	return items, nil
}

// Update edita un usuario. Email único; password vacío conserva la contraseña.
func (uc *UserUseCase) Update(id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	person, err := uc.personRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if in.FirstName != nil {
		person.FirstName = *in.FirstName
	}
	if in.PaternalSurname != nil {
		person.PaternalSurname = *in.PaternalSurname
	}
	if in.MaternalSurname != nil {
		person.MaternalSurname = *in.MaternalSurname
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != person.Email {
			if other, err := uc.personRepo.GetByEmail(email); err == nil && other.ID != id {
				return nil, domain.ErrEmailAlreadyExists
			} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			person.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		person.PasswordHash = string(hash)
	}
	if in.BirthDate != nil {
		person.BirthDate = in.BirthDate
	}
	if err := uc.personRepo.Update(person); err != nil {
		return nil, err
	}
	if in.Role != nil && *in.Role != "" && *in.Role != person.Role {
		role, err := uc.personRepo.GetRoleByName(*in.Role)
		if err != nil {
			return nil, asInvalidRef(err)
		}
		if err := uc.personRepo.AssignRole(id, role.ID); err != nil {
			return nil, err
		}
		person.Role = role.Name
	}
	out := toUserResponse(person)
	return &out, nil
}

// Delete elimina un usuario. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(id, actorID int64) error {
	if id == actorID {
		return domain.ErrConflict
	}
	if _, err := uc.personRepo.GetByID(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return uc.personRepo.Delete(id)
}

// ListRoles lista los roles asignables.
func (uc *UserUseCase) ListRoles() ([]dto.RoleResponse, error) {
	list, err := uc.personRepo.ListRoles()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.RoleResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
		})
	}
	return items, nil
}

// ListResponsible lista las personas que pueden figurar como responsables de
// almacén o despacho.
func (uc *UserUseCase) ListResponsible() ([]dto.UserResponse, error) {
	list, err := uc.personRepo.ListByRoles([]string{
		entity.RoleAdministrator,
		entity.RoleManager,
		entity.RoleAssistant,
		entity.RoleLogistics,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toUserResponse(p))
	}
	return items, nil
}

func toUserResponse(p *entity.Person) dto.UserResponse {
	return dto.UserResponse{
		ID:              p.ID,
		FirstName:       p.FirstName,
		PaternalSurname: p.PaternalSurname,
		MaternalSurname: p.MaternalSurname,
		CI:              p.CI,
		Email:           p.Email,
		BirthDate:       p.BirthDate,
		Role:            p.Role,
	}
}
