package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
	"github.com/dquispe/almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	personRepo repository.PersonRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(personRepo repository.PersonRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{personRepo: personRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: valida unicidad de email y CI, hashea el password
// con bcrypt y persiste. Si se indica rol, lo asigna.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if existing, err := uc.personRepo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing, err := uc.personRepo.GetByCI(in.CI); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	person := &entity.Person{
		FirstName:       in.FirstName,
		PaternalSurname: in.PaternalSurname,
		MaternalSurname: in.MaternalSurname,
		CI:              in.CI,
		Email:           in.Email,
		PasswordHash:    string(hash),
		BirthDate:       in.BirthDate,
	}
	if err := uc.personRepo.Create(person); err != nil {
		return nil, err
	}
	if in.Role != "" {
		role, err := uc.personRepo.GetRoleByName(in.Role)
		if err != nil {
			return nil, err
		}
		if err := uc.personRepo.AssignRole(person.ID, role.ID); err != nil {
			return nil, err
		}
		person.Role = role.Name
	}
	return toUserResponse(person), nil
}

// Login verifica email/password, genera JWT con el rol y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	person, err := uc.personRepo.GetByEmail(in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, person.ID, person.FullName(), person.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(person),
	}, nil
}

func toUserResponse(p *entity.Person) *dto.UserResponse {
	if p == nil {
		return nil
	}
	return &dto.UserResponse{
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
