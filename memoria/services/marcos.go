package services

import (
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// TablaMarcos es la colección circular de todos los marcos vivos. Se
// implementa como un slice ordenado más una mano persistente (patrón de
// reloj): la mano sobrevive entre desalojos para que barridos sucesivos no
// arranquen siempre del mismo punto. La tabla no tiene lock propio, toda
// operación se hace con models.MemoryLock tomado por el asignador.
type TablaMarcos struct {
	items []*models.Marco
	mano  int
}

// Registrar inserta un marco recién asignado en la posición actual de la
// mano; el orden de inserción define el orden de barrido, y el marco nuevo
// queda justo detrás de la mano (es el último en ser barrido).
func (t *TablaMarcos) Registrar(m *models.Marco) {
	if len(t.items) == 0 {
		t.items = append(t.items, m)
		t.mano = 0
		return
	}
	i := t.mano
	t.items = append(t.items, nil)
	copy(t.items[i+1:], t.items[i:])
	t.items[i] = m
	t.mano = (i + 1) % len(t.items)
}

// BuscarPorBase hace un barrido circular desde la mano, dando una sola
// vuelta, y retorna el marco cuya base física coincida, o nil.
func (t *TablaMarcos) BuscarPorBase(base int) *models.Marco {
	n := len(t.items)
	for i := 0; i < n; i++ {
		m := t.items[(t.mano+i)%n]
		if m.Base == base {
			return m
		}
	}
	return nil
}

// Quitar elimina un marco de la tabla. La mano se rederiva del largo nuevo
// en lugar de quedar como posición cruda, así un barrido pausado a mitad de
// la colección no queda colgado de un índice inválido.
func (t *TablaMarcos) Quitar(m *models.Marco) {
	for i, item := range t.items {
		if item == m {
			t.items = append(t.items[:i], t.items[i+1:]...)
			if i < t.mano {
				t.mano--
			}
			if len(t.items) == 0 {
				t.mano = 0
			} else {
				t.mano %= len(t.items)
			}
			return
		}
	}
}

// Mano retorna el marco apuntado por la mano del reloj, o nil si la tabla
// está vacía.
func (t *TablaMarcos) Mano() *models.Marco {
	if len(t.items) == 0 {
		return nil
	}
	return t.items[t.mano]
}

// AvanzarMano mueve la mano una posición, con vuelta circular.
func (t *TablaMarcos) AvanzarMano() {
	if len(t.items) == 0 {
		return
	}
	t.mano = (t.mano + 1) % len(t.items)
}

// Tamanio retorna la cantidad de marcos vivos.
func (t *TablaMarcos) Tamanio() int {
	return len(t.items)
}

// Marcos retorna una copia del contenido de la tabla, en orden de barrido.
func (t *TablaMarcos) Marcos() []*models.Marco {
	n := len(t.items)
	all := make([]*models.Marco, 0, n)
	for i := 0; i < n; i++ {
		all = append(all, t.items[(t.mano+i)%n])
	}
	return all
}
