package services

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// relojAccesos es el contador monotónico de accesos a memoria; marca el
// último uso de cada marco para WSCLOCK. Se muta con MemoryLock tomado.
var relojAccesos int64

type tlbKey struct {
	pid    uint
	pagina int
}

// tlb cachea traducciones página -> base de frame delante de la tabla de
// páginas. Con tlb_entries en 0 queda desactivada.
var tlb *lru.Cache

func InitTLB() {
	tlb = nil
	if models.MemoryConfig.TlbEntries > 0 {
		cache, err := lru.New(models.MemoryConfig.TlbEntries)
		if err != nil {
			panic(err)
		}
		tlb = cache
	}
}

// TranslateAddress traduce una dirección virtual del proceso a la dirección
// física correspondiente. Una dirección en el rango del kernel o sobre una
// página no presente devuelve ErrInvalidAccess; esa condición es fatal para
// el proceso y la resuelve el borde de syscall, no este lookup. No asigna
// marcos: la asignación por fallo de página es un camino aparte.
func TranslateAddress(pid uint, vaddr int) (int, error) {
	models.MemoryLock.Lock()
	defer models.MemoryLock.Unlock()
	return traducir(pid, vaddr)
}

// traducir es el cuerpo de la traducción; se llama con MemoryLock tomado.
func traducir(pid uint, vaddr int) (int, error) {
	cfg := models.MemoryConfig
	if vaddr < 0 || vaddr >= cfg.KernelBase {
		return -1, errors.Wrapf(models.ErrInvalidAccess, "dirección %d fuera del espacio de usuario", vaddr)
	}

	pagina := vaddr / cfg.PageSize
	offset := vaddr % cfg.PageSize

	if tlb != nil {
		if v, ok := tlb.Get(tlbKey{pid, pagina}); ok {
			base := v.(int)
			slog.Debug(fmt.Sprintf("PID: %d - TLB HIT - Pagina: %d", pid, pagina))
			tocarMarco(pid, pagina, base)
			return base + offset, nil
		}
	}

	entrada, ok := buscarEntrada(pid, pagina)
	if !ok || !entrada.Presence {
		return -1, errors.Wrapf(models.ErrInvalidAccess, "página %d no mapeada para el PID %d", pagina, pid)
	}

	if tlb != nil {
		tlb.Add(tlbKey{pid, pagina}, entrada.Frame)
	}
	tocarMarco(pid, pagina, entrada.Frame)
	return entrada.Frame + offset, nil
}

// tocarMarco prende el bit de uso de la página y del marco que la respalda,
// y refresca la marca de último acceso. Es lo que haría el bit de referencia
// del hardware en cada acceso.
func tocarMarco(pid uint, pagina int, base int) {
	relojAccesos++
	if e, ok := buscarEntrada(pid, pagina); ok {
		e.Use = true
	}
	if m := tabla.BuscarPorBase(base); m != nil {
		m.Uso = true
		m.UltimoUso = relojAccesos
	}
}

// quitarTLB invalida la traducción cacheada de una página puntual.
func quitarTLB(pid uint, pagina int) {
	if tlb == nil {
		return
	}
	tlb.Remove(tlbKey{pid, pagina})
}

// flushTLB elimina las traducciones de los procesos que sean finalizados.
func flushTLB(pid uint) {
	if tlb == nil {
		return
	}
	for _, k := range tlb.Keys() {
		if key, ok := k.(tlbKey); ok && key.pid == pid {
			tlb.Remove(key)
		}
	}
}
