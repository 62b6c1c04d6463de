package dto

import "time"

// RegisterRequest entrada para registrar un usuario.
type RegisterRequest struct {
	FirstName       string     `json:"nombre" validate:"required,min=1,max=100"`
	PaternalSurname string     `json:"apellido_paterno" validate:"required,min=1,max=100"`
	MaternalSurname string     `json:"apellido_materno"`
	CI              string     `json:"ci" validate:"required,min=1,max=30"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=6"`
	BirthDate       *time.Time `json:"fecha_nacimiento"`
	Role            string     `json:"rol"`
}

// UpdateUserRequest entrada para editar un usuario. Password vacío no cambia
// la contraseña.
type UpdateUserRequest struct {
	FirstName       *string    `json:"nombre" validate:"omitempty,min=1,max=100"`
	PaternalSurname *string    `json:"apellido_paterno" validate:"omitempty,min=1,max=100"`
	MaternalSurname *string    `json:"apellido_materno"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	Password        *string    `json:"password" validate:"omitempty,min=6"`
	BirthDate       *time.Time `json:"fecha_nacimiento"`
	Role            *string    `json:"rol"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID              int64      `json:"id_persona"`
	FirstName       string     `json:"nombre"`
	PaternalSurname string     `json:"apellido_paterno"`
	MaternalSurname string     `json:"apellido_materno,omitempty"`
	CI              string     `json:"ci"`
	Email           string     `json:"email"`
	BirthDate       *time.Time `json:"fecha_nacimiento,omitempty"`
	Role            string     `json:"rol,omitempty"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RoleResponse rol asignable.
type RoleResponse struct {
	ID          int64  `json:"id_rol"`
	Name        string `json:"nombre_rol"`
	Description string `json:"descripcion,omitempty"`
}
