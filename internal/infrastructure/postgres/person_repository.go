package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

// PersonRepo implementación de PersonRepository sobre PostgreSQL. El rol vive
// en la tabla puente persona_rol (una fila por persona).
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador de personas. Pasar pool o tx (Querier).
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

const personSelect = `
	SELECT p.id_persona, p.nombre, p.apellido_paterno, p.apellido_materno, p.ci,
	       p.email, p.password_hash, p.fecha_nacimiento, COALESCE(r.nombre_rol, '')
	FROM persona p
	LEFT JOIN persona_rol pr ON pr.id_persona = p.id_persona
	LEFT JOIN rol r ON r.id_rol = pr.id_rol`

// Create persiste una nueva persona.
func (r *PersonRepo) Create(person *entity.Person) error {
	query := `
		INSERT INTO persona (nombre, apellido_paterno, apellido_materno, ci, email, password_hash, fecha_nacimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_persona`
	err := r.q.QueryRow(context.Background(), query,
		person.FirstName, person.PaternalSurname, person.MaternalSurname,
		person.CI, person.Email, person.PasswordHash, person.BirthDate,
	).Scan(&person.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID con su rol.
func (r *PersonRepo) GetByID(id int64) (*entity.Person, error) {
	return r.scanOne(personSelect+` WHERE p.id_persona = $1`, id)
}

// GetByEmail obtiene una persona por email con su rol.
func (r *PersonRepo) GetByEmail(email string) (*entity.Person, error) {
	return r.scanOne(personSelect+` WHERE LOWER(p.email) = LOWER($1)`, email)
}

// GetByCI obtiene una persona por CI con su rol.
func (r *PersonRepo) GetByCI(ci string) (*entity.Person, error) {
	return r.scanOne(personSelect+` WHERE p.ci = $1`, ci)
}

// Update actualiza los datos de una persona. El rol se cambia con AssignRole.
func (r *PersonRepo) Update(person *entity.Person) error {
	query := `
		UPDATE persona
		SET nombre = $2, apellido_paterno = $3, apellido_materno = $4,
		    email = $5, password_hash = $6, fecha_nacimiento = $7
		WHERE id_persona = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		person.ID, person.FirstName, person.PaternalSurname, person.MaternalSurname,
		person.Email, person.PasswordHash, person.BirthDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update persona: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las personas con su rol.
func (r *PersonRepo) List() ([]*entity.Person, error) {
	query := personSelect + ` ORDER BY p.apellido_paterno, p.nombre`
	return r.scanList(query)
}

// Delete elimina una persona y su asignación de rol.
func (r *PersonRepo) Delete(id int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM persona_rol WHERE id_persona = $1`, id); err != nil {
		return fmt.Errorf("delete persona_rol: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM persona WHERE id_persona = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete persona: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRoles lista los roles del sistema.
func (r *PersonRepo) ListRoles() ([]*entity.Role, error) {
	query := `SELECT id_rol, nombre_rol, COALESCE(descripcion, '') FROM rol ORDER BY nombre_rol`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// GetRoleByName obtiene un rol por nombre.
func (r *PersonRepo) GetRoleByName(name string) (*entity.Role, error) {
	query := `SELECT id_rol, nombre_rol, COALESCE(descripcion, '') FROM rol WHERE nombre_rol = $1`
	var role entity.Role
	err := r.q.QueryRow(context.Background(), query, name).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &role, nil
}

// AssignRole reemplaza el rol actual de la persona.
func (r *PersonRepo) AssignRole(personID, roleID int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM persona_rol WHERE id_persona = $1`, personID); err != nil {
		return fmt.Errorf("clear persona_rol: %w", err)
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO persona_rol (id_persona, id_rol) VALUES ($1, $2)`, personID, roleID)
	if err != nil {
		return fmt.Errorf("insert persona_rol: %w", err)
	}
	return nil
}

// ListByRoles lista las personas cuyo rol está en names.
func (r *PersonRepo) ListByRoles(names []string) ([]*entity.Person, error) {
	query := personSelect + `
	WHERE r.nombre_rol = ANY($1)
	ORDER BY p.apellido_paterno, p.nombre`
	return r.scanList(query, names)
}

func (r *PersonRepo) scanOne(query string, args ...any) (*entity.Person, error) {
	var p entity.Person
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.FirstName, &p.PaternalSurname, &p.MaternalSurname, &p.CI,
		&p.Email, &p.PasswordHash, &p.BirthDate, &p.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get persona: %w", err)
	}
	return &p, nil
}

func (r *PersonRepo) scanList(query string, args ...any) ([]*entity.Person, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Person
	for rows.Next() {
		var p entity.Person
		err := rows.Scan(
			&p.ID, &p.FirstName, &p.PaternalSurname, &p.MaternalSurname, &p.CI,
			&p.Email, &p.PasswordHash, &p.BirthDate, &p.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan persona: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
