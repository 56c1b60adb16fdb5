package services

import (
	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// SelectorWSClock es la variante working-set del reloj: además del bit de
// uso pesa la antigüedad del último acceso, prefiriendo marcos sin uso hace
// más de Tau accesos. Si una vuelta completa no encuentra ninguno tan viejo,
// cae al marco menos recientemente usado que haya visto, así la selección
// sigue terminando en a lo sumo dos vueltas.
type SelectorWSClock struct {
	Tau int64
}

func (s *SelectorWSClock) SeleccionarVictima(t *TablaMarcos) (*models.Marco, error) {
	n := t.Tamanio()
	if n == 0 {
		return nil, errors.Wrap(models.ErrResourceExhausted, "no hay marcos en la tabla")
	}

	var masViejo *models.Marco
	for i := 0; i < 2*n; i++ {
		m := t.Mano()
		if m.EnDesalojo {
			t.AvanzarMano()
			continue
		}
		if m.Uso {
			// Segunda oportunidad: se apaga el bit y se refresca la marca
			// de acceso, como si el hardware lo acabara de tocar.
			m.Uso = false
			m.UltimoUso = relojAccesos
			t.AvanzarMano()
			continue
		}
		if relojAccesos-m.UltimoUso >= s.Tau {
			t.AvanzarMano()
			return m, nil
		}
		if masViejo == nil || m.UltimoUso < masViejo.UltimoUso {
			masViejo = m
		}
		t.AvanzarMano()
	}

	if masViejo != nil {
		return masViejo, nil
	}
	return nil, errors.Wrap(models.ErrResourceExhausted, "sin victima elegible tras dos vueltas")
}
