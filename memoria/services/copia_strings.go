package services

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// Estados del copiado acotado: la copia arranca escaneando la primera
// página y va cruzando de página en página hasta encontrar el terminador o
// agotar la capacidad.
type estadoCopia int

const (
	escaneandoPrimeraPagina estadoCopia = iota
	escaneandoSiguientePagina
	copiaCompleta
	copiaTruncada
)

// CopyStringFromUser copia un string terminado en cero desde la memoria del
// proceso a un buffer del kernel de capacidad fija. Escanea cada página solo
// desde el offset de la dirección hasta el borde; si el terminador no
// aparece antes del borde, re-traduce la página siguiente desde su comienzo
// y sigue ahí, así nunca se lee más allá de una página válida. El resultado
// nunca supera capacity-1 bytes: si el terminador no aparece dentro de la
// capacidad, el caller recibe el string truncado (no un error). Cada cruce
// de página se re-valida con el traductor; una página siguiente inválida es
// ErrInvalidAccess.
func CopyStringFromUser(pid uint, vaddr int, capacity int) (string, bool, error) {
	// El rango del puntero se valida aun cuando la capacidad no permita leer
	// nada: un puntero de kernel nunca es aceptable.
	if vaddr < 0 || vaddr >= models.MemoryConfig.KernelBase {
		return "", false, errors.Wrapf(models.ErrInvalidAccess, "dirección %d fuera del espacio de usuario", vaddr)
	}
	if capacity <= 1 {
		return "", capacity == 1, nil
	}

	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	pageSize := models.MemoryConfig.PageSize
	dst := make([]byte, 0, capacity-1)
	addr := vaddr
	estado := escaneandoPrimeraPagina

	for estado == escaneandoPrimeraPagina || estado == escaneandoSiguientePagina {
		phys, err := traducir(pid, addr)
		if err != nil {
			return "", false, err
		}

		restante := pageSize - addr%pageSize
		// Presupuesto total de lectura que queda, terminador incluido:
		// jamás se leen más de capacity bytes sumando todos los cruces.
		presupuesto := capacity - len(dst)
		ventana := models.UserMemory[phys : phys+min(restante, presupuesto)]

		if i := bytes.IndexByte(ventana, 0); i >= 0 {
			// La ventana ya está acotada al presupuesto, así que lo que
			// precede al terminador siempre entra en capacity-1 bytes.
			dst = append(dst, ventana[:i]...)
			estado = copiaCompleta
			continue
		}

		espacio := capacity - 1 - len(dst)
		dst = append(dst, ventana[:min(len(ventana), espacio)]...)
		if len(dst) == capacity-1 {
			estado = copiaTruncada
			continue
		}

		// Sin terminador antes del borde: se sigue en la página siguiente,
		// desde su comienzo.
		addr = addr - addr%pageSize + pageSize
		estado = escaneandoSiguientePagina
	}

	return string(dst), estado == copiaTruncada, nil
}
