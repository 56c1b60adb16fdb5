package services

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

// EscritorSwap es el colaborador de respaldo al que se le vuelca el
// contenido de una víctima sucia y no compartida durante el desalojo.
type EscritorSwap interface {
	WriteOut(contenido []byte) (int64, error)
}

// Swap es el escritor en uso; los tests lo reemplazan por uno falso para
// simular fallas de IO.
var Swap EscritorSwap = &SwapArchivo{}

// SwapArchivo escribe cada página al final del swapfile y devuelve el
// offset donde quedó, para anotarlo en las entradas de página desalojadas.
type SwapArchivo struct {
	mu sync.Mutex
}

func (s *SwapArchivo) WriteOut(contenido []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(models.MemoryConfig.SwapFilePath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return -1, errors.Wrapf(models.ErrSwapIO, "no se pudo abrir swapfile: %v", err)
	}
	defer file.Close()

	// Llevar el cursor al final del archivo para escribir los datos al final
	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return -1, errors.Wrapf(models.ErrSwapIO, "error posicionando el cursor al final de swapfile: %v", err)
	}

	if _, err := file.Write(contenido); err != nil {
		return -1, errors.Wrapf(models.ErrSwapIO, "error escribiendo página en swapfile: %v", err)
	}

	return offset, nil
}
