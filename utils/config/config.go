package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// InitConfig lee el archivo de configuración y deja sus valores en config.
// Si el archivo no existe o el JSON está roto, el módulo no puede arrancar,
// así que se hace panic.
//
// Parámetros:
//   - filePath: ubicación del archivo de configuración
//   - config: puntero a la estructura de config del módulo
//
// Ejemplo:
//
//	func main() {
//		var kernelConfig models.Config
//		config.InitConfig("./configs/kernel.json", &kernelConfig)
//	}
func InitConfig(filePath string, config interface{}) {
	if err := setupConfig(filePath, config); err != nil {
		panic(fmt.Errorf("error al configurar el archivo %s: %v", filePath, err))
	}
}

func setupConfig(filePath string, config interface{}) error {
	configFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)

	if err := jsonParser.Decode(config); err != nil {
		return err
	}

	return nil
}
