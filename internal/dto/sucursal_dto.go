package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSucursalRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=100"`
	Slug      string  `json:"slug"      validate:"required,min=2,max=60,lowercase"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ActualizarSucursalRequest struct {
	Nombre    string  `json:"nombre"    validate:"omitempty,min=2,max=100"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
	Activa    *bool   `json:"activa"`
}

type ConfigurarTurnoRequest struct {
	Turno  string `json:"turno"  validate:"required,oneof=manana mediodia noche trasnoche"`
	Activo bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoSucursalResponse struct {
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type SucursalResponse struct {
	ID        string                  `json:"id"`
	Nombre    string                  `json:"nombre"`
	Slug      string                  `json:"slug"`
	Direccion *string                 `json:"direccion"`
	Activa    bool                    `json:"activa"`
	Turnos    []TurnoSucursalResponse `json:"turnos"`
}
