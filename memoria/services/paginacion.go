package services

import (
	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// InicializarTablaPaginas crea la tabla de páginas vacía de un proceso.
// Tiene que existir antes de poder asignarle marcos.
func InicializarTablaPaginas(pid uint) error {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	if _, existe := models.PageTables[pid]; existe {
		return errors.Errorf("ya existe una tabla de páginas para el PID %d", pid)
	}
	models.PageTables[pid] = make(map[int]*models.PageEntry)
	return nil
}

// mapearPagina inserta la entrada página -> frame en la tabla del proceso.
// Se llama con MemoryLock tomado.
func mapearPagina(pid uint, pagina int, base int) error {
	tabla, existe := models.PageTables[pid]
	if !existe {
		return errors.Errorf("tabla de páginas no inicializada para el PID %d", pid)
	}
	if e, ya := tabla[pagina]; ya {
		if e.Presence {
			return errors.Errorf("página %d ya mapeada para el PID %d", pagina, pid)
		}
		// Remapeo de una entrada existente (desalojo abortado): el bit de
		// modificado y el offset de swap se conservan.
		e.Frame = base
		e.Presence = true
		return nil
	}
	tabla[pagina] = &models.PageEntry{
		Frame:    base,
		Presence: true,
	}
	return nil
}

// desmapearPagina apaga la presencia de la página y la saca de la TLB. La
// entrada queda en la tabla (la página puede estar en swap). Se llama con
// MemoryLock tomado.
func desmapearPagina(pid uint, pagina int) {
	tabla, existe := models.PageTables[pid]
	if !existe {
		return
	}
	if e, ok := tabla[pagina]; ok {
		e.Presence = false
		e.Use = false
	}
	quitarTLB(pid, pagina)
}

// anotarSwap registra dónde quedó el contenido de la página en el swapfile.
// Se llama con MemoryLock tomado.
func anotarSwap(pid uint, pagina int, offset int64) {
	tabla, existe := models.PageTables[pid]
	if !existe {
		return
	}
	if e, ok := tabla[pagina]; ok {
		e.SwapOffset = offset
	}
}

// buscarEntrada devuelve la entrada de página si existe. Se llama con
// MemoryLock tomado.
func buscarEntrada(pid uint, pagina int) (*models.PageEntry, bool) {
	tabla, existe := models.PageTables[pid]
	if !existe {
		return nil, false
	}
	e, ok := tabla[pagina]
	return e, ok
}
