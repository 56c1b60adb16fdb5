package services

import (
	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// SelectorVictima es la política de reemplazo: elige qué marco desalojar
// cuando el pool está agotado. Se llama con models.MemoryLock tomado.
type SelectorVictima interface {
	SeleccionarVictima(t *TablaMarcos) (*models.Marco, error)
}

// SelectorClock implementa el algoritmo de reloj clásico: si el bit de uso
// está prendido lo apaga y avanza; si está apagado, ese marco es la víctima.
type SelectorClock struct{}

// SeleccionarVictima termina en a lo sumo dos vueltas completas: la primera
// pasada apaga todos los bits de uso, así que la segunda encuentra al menos
// un marco con el bit apagado. Los marcos con un desalojo en curso se
// saltean.
func (s *SelectorClock) SeleccionarVictima(t *TablaMarcos) (*models.Marco, error) {
	n := t.Tamanio()
	if n == 0 {
		return nil, errors.Wrap(models.ErrResourceExhausted, "no hay marcos en la tabla")
	}

	for i := 0; i < 2*n; i++ {
		m := t.Mano()
		if m.EnDesalojo {
			t.AvanzarMano()
			continue
		}
		if m.Uso {
			m.Uso = false
			t.AvanzarMano()
			continue
		}
		t.AvanzarMano()
		return m, nil
	}

	return nil, errors.Wrap(models.ErrResourceExhausted, "sin victima elegible tras dos vueltas")
}
