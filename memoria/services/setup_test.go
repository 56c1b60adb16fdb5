package services

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

func configPrueba() *models.Config {
	return &models.Config{
		MemorySize:           1024,
		PageSize:             256,
		KernelBase:           2048,
		ReplacementAlgorithm: "CLOCK",
		WsClockTau:           4,
		TlbEntries:           4,
		StringCapacity:       32,
		SwapFilePath:         "swap_prueba.bin",
		LogLevel:             "INFO",
	}
}

// iniciarMemoriaPrueba deja el subsistema en un estado limpio con el config
// dado y un escritor de swap falso, y restaura el escritor real al terminar.
func iniciarMemoriaPrueba(t *testing.T, cfg *models.Config) *swapFake {
	t.Helper()
	models.MemoryConfig = cfg
	InitMemoria()

	fake := &swapFake{}
	Swap = fake
	t.Cleanup(func() { Swap = &SwapArchivo{} })
	return fake
}

// swapFake acumula las páginas volcadas y puede simular fallas de IO en las
// primeras escrituras.
type swapFake struct {
	escrituras [][]byte
	fallas     int
	offset     int64
}

func (s *swapFake) WriteOut(contenido []byte) (int64, error) {
	if s.fallas > 0 {
		s.fallas--
		return -1, errors.Wrap(models.ErrSwapIO, "falla simulada")
	}
	off := s.offset
	copia := make([]byte, len(contenido))
	copy(copia, contenido)
	s.escrituras = append(s.escrituras, copia)
	s.offset += int64(len(contenido))
	return off, nil
}
