package main

import (
	"log/slog"
	"net/http"

	kernelHandler "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/handlers"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/services"
	memoriaHandler "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/handlers"
	memoriaHelper "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/helpers"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/config"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/log"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/web/server"
)

const (
	ConfigPath        = "kernel/configs/kernel.json"
	MemoriaConfigPath = "memoria/configs/memoria.json"
	LogPath           = "kernel.log"
)

func main() {
	config.InitConfig(ConfigPath, &models.KernelConfig)
	log.InitLogger(LogPath, models.KernelConfig.LogLevel)

	memoriaHelper.InitMemoria(MemoriaConfigPath)
	services.InitProcessTable()

	http.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido al Kernel"))
	http.HandleFunc("GET /kernel", handlers.HandshakeHandler("Kernel en funcionamiento 🚀"))

	http.HandleFunc("POST /kernel/proceso", kernelHandler.InitProcessHandler)
	http.HandleFunc("POST /kernel/finalizar", kernelHandler.FinishProcessHandler)
	http.HandleFunc("POST /kernel/syscall", kernelHandler.SyscallHandler)

	http.HandleFunc("GET /memoria/estado", memoriaHandler.MemoryStatusHandler)
	http.HandleFunc("POST /memoria/leer", memoriaHandler.ReadMemoryHandler)
	http.HandleFunc("POST /memoria/escribir", memoriaHandler.WriteMemoryHandler)
	http.HandleFunc("POST /memoria/compartir", memoriaHandler.ShareFrameHandler)

	slog.Info("Comenzó la ejecución del kernel")

	err := server.InitServer(models.KernelConfig.PortKernel)
	if err != nil {
		slog.Error("Error iniciando el servidor del kernel", "error", err)
		panic(err)
	}
}
