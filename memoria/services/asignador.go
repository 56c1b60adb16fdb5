package services

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

var (
	// tabla es la tabla de marcos del sistema; la posee en exclusiva este
	// paquete, las tablas de páginas solo guardan la base física como
	// referencia débil hacia el marco.
	tabla *TablaMarcos

	// selector es la política de reemplazo elegida por config.
	selector SelectorVictima
)

// InitMemoria construye el estado del subsistema a partir del config ya
// cargado: memoria de usuario, pool de frames, tablas de páginas, tabla de
// marcos, selector de víctimas y TLB. Nada se persiste: la tabla de marcos
// se reconstruye vacía en cada arranque.
func InitMemoria() {
	cfg := models.MemoryConfig

	models.UserMemory = make([]byte, cfg.MemorySize)
	cantidad := cfg.MemorySize / cfg.PageSize
	models.FreeFrames = make([]bool, cantidad)
	for i := range models.FreeFrames {
		models.FreeFrames[i] = true
	}
	models.PageTables = make(map[uint]map[int]*models.PageEntry)

	tabla = &TablaMarcos{}
	relojAccesos = 0

	switch cfg.ReplacementAlgorithm {
	case "WSCLOCK":
		selector = &SelectorWSClock{Tau: cfg.WsClockTau}
	default:
		selector = &SelectorClock{}
	}

	InitTLB()
	slog.Debug("Memoria inicializada", "tamaño", len(models.UserMemory), "frames", cantidad)
}

// AllocateFrame asigna un frame físico limpio para la página de vaddr del
// proceso. Si el pool está agotado desaloja una víctima; la asignación solo
// falla si el desalojo no puede hacer progreso o si la contabilidad del
// proceso no existe.
func AllocateFrame(pid uint, vaddr int) (int, error) {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()
	return asignarMarco(pid, vaddr)
}

// asignarMarco se llama con MemoryLock tomado.
func asignarMarco(pid uint, vaddr int) (int, error) {
	idx := buscarMarcoLibre()
	if idx == -1 {
		var err error
		idx, err = desalojarVictima()
		if err != nil {
			return -1, err
		}
	}
	pageSize := models.MemoryConfig.PageSize
	base := idx * pageSize

	// El frame físico ya es nuestro; si el registro de metadatos falla hay
	// que devolverlo al pool antes de reportar la falla.
	if _, existe := models.PageTables[pid]; !existe {
		models.FreeFrames[idx] = true
		return -1, errors.Wrapf(models.ErrResourceExhausted, "no hay tabla de páginas para el PID %d", pid)
	}
	if err := mapearPagina(pid, vaddr/pageSize, base); err != nil {
		models.FreeFrames[idx] = true
		return -1, err
	}
	if e, ok := buscarEntrada(pid, vaddr/pageSize); ok {
		// El frame se entrega en cero: la página arranca limpia aunque la
		// entrada ya existiera de una vida anterior.
		e.Modified = false
	}

	m := models.NewMarco(base)
	m.Referencias.Add(models.Referencia{PID: pid, Vaddr: vaddr})
	m.RefCnt = 1
	relojAccesos++
	m.Uso = true
	m.UltimoUso = relojAccesos
	tabla.Registrar(m)

	limpiarFrame(idx) // sin fuga de información entre reúsos

	slog.Debug("Marco asignado", "pid", pid, "vaddr", vaddr, "base", base)
	return base, nil
}

// MapShared agrega una referencia de otro proceso sobre un marco ya vivo
// (páginas de código compartidas): no asigna un frame nuevo, solo suma el
// mapeo y la referencia.
func MapShared(pid uint, vaddr int, base int) error {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	m := tabla.BuscarPorBase(base)
	if m == nil {
		return errors.Errorf("no hay marco vivo con base %d", base)
	}
	if m.EnDesalojo {
		// Con un desalojo en curso el contenido del marco ya no está
		// garantizado; sumar una referencia acá dejaría al nuevo dueño
		// mapeado sobre un frame que está por reusarse.
		return errors.Errorf("el marco con base %d está siendo desalojado", base)
	}
	if err := mapearPagina(pid, vaddr/models.MemoryConfig.PageSize, base); err != nil {
		return err
	}
	m.Referencias.Add(models.Referencia{PID: pid, Vaddr: vaddr})
	m.RefCnt++
	verificarInvariante(m)

	slog.Debug("Marco compartido", "pid", pid, "vaddr", vaddr, "base", base, "refcnt", m.RefCnt)
	return nil
}

// ReleaseFrame quita la referencia del proceso sobre el marco. Con la última
// referencia el frame vuelve al pool y el registro se destruye; mientras
// queden procesos compartiéndolo el marco sigue vivo.
func ReleaseFrame(base int, pid uint) {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()
	liberarMarco(base, pid)
}

// liberarMarco se llama con MemoryLock tomado.
func liberarMarco(base int, pid uint) {
	m := tabla.BuscarPorBase(base)
	if m == nil {
		// Release sobre un marco que no está en la tabla es una violación
		// de contrato del caller; el barrido lo ignora.
		slog.Warn("Release sobre un marco fuera de la tabla", "base", base, "pid", pid)
		return
	}

	ref, i, ok := m.Referencias.Find(func(r models.Referencia) bool { return r.PID == pid })
	if !ok {
		slog.Warn("El proceso no tiene referencia sobre el marco", "base", base, "pid", pid)
		return
	}
	m.Referencias.Remove(i)
	m.RefCnt--
	verificarInvariante(m)
	desmapearPagina(pid, ref.Vaddr/models.MemoryConfig.PageSize)

	if m.RefCnt == 0 {
		idx := base / models.MemoryConfig.PageSize
		tabla.Quitar(m)
		limpiarFrame(idx)
		models.FreeFrames[idx] = true
		slog.Debug("Marco devuelto al pool", "base", base)
	}
}

// LiberarProceso suelta todas las referencias del proceso, destruye su tabla
// de páginas y vacía sus entradas de TLB.
func LiberarProceso(pid uint) {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()

	if tablaPaginas, existe := models.PageTables[pid]; existe {
		for _, e := range tablaPaginas {
			if e.Presence {
				liberarMarco(e.Frame, pid)
			}
		}
		delete(models.PageTables, pid)
	}
	flushTLB(pid)
}

// desalojarVictima elige una víctima, invalida su mapeo en todos los
// procesos que la referencian, la vuelca a swap si está sucia y no
// compartida, y entrega su frame. Se llama con MemoryLock tomado; la
// escritura a swap es el único punto donde el lock se suelta, y al retomarlo
// se re-valida que la víctima siga necesitando el desalojo.
func desalojarVictima() (int, error) {
	pageSize := models.MemoryConfig.PageSize

	intentos := tabla.Tamanio() + 1
	for intento := 0; intento < intentos; intento++ {
		victima, err := selector.SeleccionarVictima(tabla)
		if err != nil {
			return -1, err
		}
		victima.EnDesalojo = true

		// Invalidar el mapeo en *todos* los procesos que lo referencian,
		// no solo el del que pidió memoria.
		refs := victima.Referencias.GetAll()
		for _, r := range refs {
			desmapearPagina(r.PID, r.Vaddr/pageSize)
		}

		if victima.Modificado && victima.RefCnt == 1 {
			contenido := make([]byte, pageSize)
			copy(contenido, models.UserMemory[victima.Base:victima.Base+pageSize])

			// Único punto de suspensión: el lock no se retiene durante la
			// escritura a swap.
			models.MemoryLock.Unlock()
			offset, errSwap := Swap.WriteOut(contenido)
			models.MemoryLock.Lock()

			if victima.RefCnt == 0 {
				// Un release concurrente soltó la última referencia
				// mientras el lock estaba libre: el frame ya volvió al
				// pool, se toma directo de ahí.
				idx := victima.Base / pageSize
				if models.FreeFrames[idx] {
					models.FreeFrames[idx] = false
					return idx, nil
				}
				continue
			}
			if errSwap != nil {
				// IoError: se aborta el desalojo de esta víctima sin tocar
				// la tabla y se reintenta con otra.
				slog.Error(fmt.Sprintf("Fallo de swap desalojando el marco %d: %v", victima.Base, errSwap))
				restaurarMapeos(victima, refs)
				victima.EnDesalojo = false
				continue
			}
			if !mismasReferencias(victima.Referencias.GetAll(), refs) {
				// El conjunto de referencias cambió mientras el lock estaba
				// libre (comparar solo la cantidad no alcanza: una baja más
				// un alta dejan el contador igual con otros dueños): ya no
				// conviene desalojarlo, se busca otra víctima.
				restaurarMapeos(victima, refs)
				victima.EnDesalojo = false
				continue
			}
			for _, r := range refs {
				anotarSwap(r.PID, r.Vaddr/pageSize, offset)
			}
		}

		victima.Referencias.RemoveWhere(func(models.Referencia) bool { return true })
		victima.RefCnt = 0
		tabla.Quitar(victima)

		slog.Info(fmt.Sprintf("## Marco desalojado - Base: %d - Referencias invalidadas: %d", victima.Base, len(refs)))
		return victima.Base / pageSize, nil
	}

	return -1, errors.Wrap(models.ErrResourceExhausted, "el desalojo no hizo progreso")
}

// mismasReferencias compara el conjunto de referencias actual contra la foto
// tomada antes de soltar el lock. Las referencias solo se quitan en orden,
// así que la comparación posicional detecta cualquier alta o baja.
func mismasReferencias(actuales, foto []models.Referencia) bool {
	if len(actuales) != len(foto) {
		return false
	}
	for i := range foto {
		if actuales[i] != foto[i] {
			return false
		}
	}
	return true
}

// restaurarMapeos repone la presencia de las páginas de un desalojo
// abortado, salteando referencias que hayan desaparecido mientras el lock
// estuvo libre. Se llama con MemoryLock tomado.
func restaurarMapeos(m *models.Marco, refs []models.Referencia) {
	pageSize := models.MemoryConfig.PageSize
	for _, r := range refs {
		ref := r
		_, _, sigue := m.Referencias.Find(func(x models.Referencia) bool { return x == ref })
		if !sigue {
			continue
		}
		if err := mapearPagina(r.PID, r.Vaddr/pageSize, m.Base); err != nil {
			slog.Warn("No se pudo restaurar el mapeo tras abortar el desalojo",
				"pid", r.PID, "vaddr", r.Vaddr, "error", err)
		}
	}
}

// buscarMarcoLibre toma un frame del pool y lo marca ocupado; -1 si no hay.
// Se llama con MemoryLock tomado.
func buscarMarcoLibre() int {
	for i, libre := range models.FreeFrames {
		if libre {
			models.FreeFrames[i] = false
			return i
		}
	}
	return -1
}

// limpiarFrame pone en cero el contenido del frame. Se llama con MemoryLock
// tomado.
func limpiarFrame(idx int) {
	inicio := idx * models.MemoryConfig.PageSize
	fin := inicio + models.MemoryConfig.PageSize
	for i := inicio; i < fin && i < len(models.UserMemory); i++ {
		models.UserMemory[i] = 0
	}
}

// verificarInvariante corta la ejecución si la contabilidad de referencias
// quedó inconsistente: eso significa que las estructuras del espacio de
// direcciones están corruptas y no se puede seguir de forma segura.
func verificarInvariante(m *models.Marco) {
	if m.RefCnt < 0 || m.RefCnt != m.Referencias.Size() {
		panic(fmt.Sprintf("refcnt %d no coincide con %d referencias para el marco base %d",
			m.RefCnt, m.Referencias.Size(), m.Base))
	}
}
