package services

import (
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// LeerMemoria lee size bytes del espacio del proceso a partir de vaddr,
// traduciendo página por página. Cualquier página inválida en el rango corta
// la lectura con ErrInvalidAccess.
func LeerMemoria(pid uint, vaddr int, size int) ([]byte, error) {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	pageSize := models.MemoryConfig.PageSize
	datos := make([]byte, 0, size)
	addr := vaddr
	restante := size

	for restante > 0 {
		phys, err := traducir(pid, addr)
		if err != nil {
			return nil, err
		}
		enPagina := pageSize - addr%pageSize
		n := min(enPagina, restante)
		datos = append(datos, models.UserMemory[phys:phys+n]...)
		addr += n
		restante -= n
	}

	return datos, nil
}

// EscribirMemoria escribe datos en el espacio del proceso a partir de vaddr,
// página por página, prendiendo el bit de modificado de cada página tocada y
// del marco que la respalda.
func EscribirMemoria(pid uint, vaddr int, datos []byte) error {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	pageSize := models.MemoryConfig.PageSize
	addr := vaddr
	resta := datos

	for len(resta) > 0 {
		phys, err := traducir(pid, addr)
		if err != nil {
			return err
		}
		enPagina := pageSize - addr%pageSize
		n := min(enPagina, len(resta))
		copy(models.UserMemory[phys:phys+n], resta[:n])
		marcarModificada(pid, addr/pageSize)
		addr += n
		resta = resta[n:]
	}

	return nil
}

// marcarModificada se llama con MemoryLock tomado.
func marcarModificada(pid uint, pagina int) {
	e, ok := buscarEntrada(pid, pagina)
	if !ok {
		return
	}
	e.Modified = true
	if m := tabla.BuscarPorBase(e.Frame); m != nil {
		m.Modificado = true
	}
}

// FramesLibres cuenta los frames disponibles del pool.
func FramesLibres() int {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	count := 0
	for _, libre := range models.FreeFrames {
		if libre {
			count++
		}
	}
	return count
}
