package dto

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name     string `json:"nombre_almacen" validate:"required,min=1,max=200"`
	Capacity int64  `json:"capacidad" validate:"required,min=1"`
	Location string `json:"ubicacion"`
	PersonID *int64 `json:"id_persona"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén.
type UpdateWarehouseRequest struct {
	Name     *string `json:"nombre_almacen" validate:"omitempty,min=1,max=200"`
	Capacity *int64  `json:"capacidad" validate:"omitempty,min=1"`
	Location *string `json:"ubicacion"`
	PersonID *int64  `json:"id_persona"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID               int64  `json:"id_almacen"`
	Name             string `json:"nombre_almacen"`
	Capacity         int64  `json:"capacidad"`
	OccupiedCapacity int64  `json:"capacidad_ocupada"`
	FreeCapacity     int64  `json:"disponible"`
	Location         string `json:"ubicacion"`
	PersonID         *int64 `json:"id_persona,omitempty"`
}

// CreateShelfRequest entrada para crear un estante.
type CreateShelfRequest struct {
	WarehouseID int64  `json:"id_almacen" validate:"required"`
	Aisle       string `json:"pasillo" validate:"required,min=1,max=50"`
	Capacity    int64  `json:"capacidad" validate:"required,min=1"`
}

// UpdateShelfRequest entrada para actualizar un estante.
type UpdateShelfRequest struct {
	Aisle    *string `json:"pasillo" validate:"omitempty,min=1,max=50"`
	Capacity *int64  `json:"capacidad" validate:"omitempty,min=1"`
	Status   *string `json:"estado" validate:"omitempty,oneof=Disponible Inutilizable"`
}

// ShelfResponse salida de un estante.
type ShelfResponse struct {
	ID               int64  `json:"id_estante"`
	WarehouseID      int64  `json:"id_almacen"`
	Aisle            string `json:"pasillo"`
	Capacity         int64  `json:"capacidad"`
	OccupiedCapacity int64  `json:"capacidad_ocupada"`
	FreeCapacity     int64  `json:"disponible"`
	Status           string `json:"estado"`
}
