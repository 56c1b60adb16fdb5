package helpers

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/config"
)

// CreateFile crea el archivo si no existe.
func CreateFile(file string) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		slog.Error(fmt.Sprintf("Error al crear el archivo: %v", err))
		return err
	}
	f.Close()
	return nil
}

// InitMemoria carga el config del subsistema de memoria, construye su
// estado y deja listo el swapfile.
func InitMemoria(configPath string) {
	config.InitConfig(configPath, &models.MemoryConfig)

	services.InitMemoria()

	slog.Debug(fmt.Sprintf("Swap: %s", models.MemoryConfig.SwapFilePath))
	CreateFile(models.MemoryConfig.SwapFilePath)
}
