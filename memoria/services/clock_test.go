package services

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

func tablaConMarcos(bases ...int) (*TablaMarcos, []*models.Marco) {
	tabla := &TablaMarcos{}
	marcos := make([]*models.Marco, 0, len(bases))
	for _, base := range bases {
		m := models.NewMarco(base)
		tabla.Registrar(m)
		marcos = append(marcos, m)
	}
	return tabla, marcos
}

func TestClockEligeElPrimeroSinUso(t *testing.T) {
	tabla, marcos := tablaConMarcos(0, 256, 512)
	marcos[0].Uso = true
	marcos[1].Uso = false
	marcos[2].Uso = true

	s := &SelectorClock{}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if victima != marcos[1] {
		t.Errorf("se esperaba la víctima con base 256, se eligió base %d", victima.Base)
	}
	if marcos[0].Uso {
		t.Errorf("el bit de uso del marco barrido tendría que haberse apagado")
	}
}

func TestClockDaSegundaOportunidadATodos(t *testing.T) {
	tabla, marcos := tablaConMarcos(0, 256, 512)
	for _, m := range marcos {
		m.Uso = true
	}

	s := &SelectorClock{}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	// La primera vuelta apaga todos los bits; la segunda cae en el primero.
	if victima != marcos[0] {
		t.Errorf("se esperaba la víctima con base 0, se eligió base %d", victima.Base)
	}
	for _, m := range marcos {
		if m != victima && m.Uso {
			t.Errorf("el marco base %d quedó con el bit de uso prendido", m.Base)
		}
	}
}

func TestClockSalteaDesalojosEnCurso(t *testing.T) {
	tabla, marcos := tablaConMarcos(0, 256)
	marcos[0].EnDesalojo = true

	s := &SelectorClock{}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if victima != marcos[1] {
		t.Errorf("un marco con desalojo en curso no puede volver a elegirse")
	}
}

func TestClockTablaVacia(t *testing.T) {
	tabla := &TablaMarcos{}
	s := &SelectorClock{}
	if _, err := s.SeleccionarVictima(tabla); !errors.Is(err, models.ErrResourceExhausted) {
		t.Errorf("se esperaba ErrResourceExhausted, se obtuvo %v", err)
	}
}

func TestClockTodosEnDesalojo(t *testing.T) {
	tabla, marcos := tablaConMarcos(0, 256)
	for _, m := range marcos {
		m.EnDesalojo = true
	}
	s := &SelectorClock{}
	if _, err := s.SeleccionarVictima(tabla); !errors.Is(err, models.ErrResourceExhausted) {
		t.Errorf("se esperaba ErrResourceExhausted, se obtuvo %v", err)
	}
}

func TestWSClockEligeFueraDelWorkingSet(t *testing.T) {
	relojAccesos = 100
	tabla, marcos := tablaConMarcos(0, 256, 512)
	marcos[0].UltimoUso = 99 // reciente, dentro del working set
	marcos[1].UltimoUso = 50 // viejo, fuera del working set
	marcos[2].UltimoUso = 98

	s := &SelectorWSClock{Tau: 10}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if victima != marcos[1] {
		t.Errorf("se esperaba la víctima con base 256, se eligió base %d", victima.Base)
	}
}

func TestWSClockCaeAlMenosRecienteSiTodosSonJovenes(t *testing.T) {
	relojAccesos = 100
	tabla, marcos := tablaConMarcos(0, 256, 512)
	marcos[0].UltimoUso = 98
	marcos[1].UltimoUso = 95
	marcos[2].UltimoUso = 99

	s := &SelectorWSClock{Tau: 50}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if victima != marcos[1] {
		t.Errorf("sin marcos fuera del working set tiene que caer al menos reciente, se eligió base %d", victima.Base)
	}
}

func TestWSClockRefrescaLaMarcaConElBitDeUso(t *testing.T) {
	relojAccesos = 100
	tabla, marcos := tablaConMarcos(0, 256)
	marcos[0].Uso = true
	marcos[0].UltimoUso = 1 // viejísimo, pero con el bit prendido
	marcos[1].UltimoUso = 90

	s := &SelectorWSClock{Tau: 5}
	victima, err := s.SeleccionarVictima(tabla)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if victima != marcos[1] {
		t.Errorf("el bit de uso tendría que haber salvado al marco base 0")
	}
	if marcos[0].UltimoUso != 100 {
		t.Errorf("la segunda oportunidad tiene que refrescar la marca de acceso, quedó %d", marcos[0].UltimoUso)
	}
}
