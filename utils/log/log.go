package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// InitLogger configura slog para loguear en consola y en archivo a la vez,
// con el nivel que venga definido en el archivo de config.
//
// Parámetros:
//   - logPath: la ubicación donde se va a escribir el archivo de log
//   - logLevel: nivel de logueo ("DEBUG", "INFO", "WARN", "ERROR")
//
// Ejemplo:
//
//	func main() {
//		log.InitLogger("./logs/kernel.log", "INFO")
//	}
func InitLogger(logPath string, logLevel string) {
	// Creamos el archivo de log en modo append; si no se puede, no tiene
	// sentido seguir levantando el módulo.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		panic(err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(multiWriter, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))

	// Si el nivel del config no existía avisamos, pero arrancamos igual con INFO.
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger. ")
}

func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("No existe %s, se coloca INFO por defecto. ", levelStr)
	}
}
