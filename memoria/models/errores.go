package models

import "github.com/pkg/errors"

// Taxonomía de errores del subsistema de memoria.
//
// ErrInvalidAccess: puntero de usuario inválido (fuera del espacio de
// usuario o página no mapeada). Se resuelve en el borde de syscall
// finalizando al proceso, nunca se ignora en silencio.
//
// ErrResourceExhausted: falla de asignación no resoluble por desalojo
// (metadatos del kernel o pool sin víctimas elegibles).
//
// ErrSwapIO: falla de escritura a swap durante un desalojo; aborta el
// desalojo de esa víctima sin corromper la tabla de marcos.
var (
	ErrInvalidAccess     = errors.New("acceso invalido a memoria de usuario")
	ErrResourceExhausted = errors.New("recursos de memoria agotados")
	ErrSwapIO            = errors.New("error de IO escribiendo swap")
)
