package services

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/models"
	memoriaModels "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	memoria "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/list"
)

func InitProcessTable() {
	models.ProcessLock.Lock()
	defer models.ProcessLock.Unlock()
	models.ProcessTable = make(map[uint]*models.PCB)
}

// InitProcess da de alta un proceso: crea su tabla de páginas y le asigna
// sus páginas iniciales a través del asignador (acá se simula el camino que
// en el hardware dispara el manejador de fallos de página). Si alguna
// asignación falla se libera todo lo que se llegó a tomar.
func InitProcess(pid uint, nombre string, paginas int) error {
	models.ProcessLock.RLock()
	_, existe := models.ProcessTable[pid]
	models.ProcessLock.RUnlock()
	if existe {
		return errors.Errorf("ya existe un proceso con PID %d", pid)
	}

	if err := memoria.InicializarTablaPaginas(pid); err != nil {
		return err
	}

	pageSize := memoriaModels.MemoryConfig.PageSize
	for i := 0; i < paginas; i++ {
		if _, err := memoria.AllocateFrame(pid, i*pageSize); err != nil {
			slog.Error("Error asignando frame", "pid", pid, "pagina", i, "error", err)
			memoria.LiberarProceso(pid)
			return errors.Wrapf(err, "falló la asignación de marcos para el PID %d", pid)
		}
	}

	pcb := &models.PCB{
		PID:      pid,
		Nombre:   nombre,
		Paginas:  paginas,
		Abiertos: &list.ArrayList[models.OpenFile]{},
	}
	models.ProcessLock.Lock()
	models.ProcessTable[pid] = pcb
	models.ProcessLock.Unlock()

	slog.Info(fmt.Sprintf("## PID: %d - Proceso Creado - Páginas: %d", pid, paginas))
	return nil
}

// EndProcess destruye al proceso y devuelve todos sus recursos: marcos,
// tabla de páginas y entradas de TLB. Es también el destino de todo acceso
// inválido detectado en el borde de syscall.
func EndProcess(pid uint, motivo string) {
	models.ProcessLock.Lock()
	_, existia := models.ProcessTable[pid]
	delete(models.ProcessTable, pid)
	models.ProcessLock.Unlock()

	memoria.LiberarProceso(pid)

	if !existia {
		slog.Warn("Se pidió finalizar un proceso inexistente", "pid", pid)
		return
	}
	slog.Info(fmt.Sprintf("## PID: %d - Proceso Destruido - Motivo: %s", pid, motivo))
}

// CurrentProcess valida que el caller de las primitivas sea un proceso
// genuino de la tabla.
func CurrentProcess(pid uint) (*models.PCB, bool) {
	models.ProcessLock.RLock()
	defer models.ProcessLock.RUnlock()
	pcb, ok := models.ProcessTable[pid]
	return pcb, ok
}
