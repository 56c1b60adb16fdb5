package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/services"
	memoriaModels "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/web/server"
)

type InitProcessRequest struct {
	PID     uint   `json:"pid"`
	Nombre  string `json:"nombre"`
	Paginas int    `json:"paginas"`
}

type FinishProcessRequest struct {
	PID    uint   `json:"pid"`
	Motivo string `json:"motivo"`
}

// InitProcessHandler crea un proceso con sus páginas iniciales ya
// asignadas. Si la memoria está agotada responde 507.
func InitProcessHandler(w http.ResponseWriter, r *http.Request) {
	var req InitProcessRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	if err := services.InitProcess(req.PID, req.Nombre, req.Paginas); err != nil {
		if errors.Is(err, memoriaModels.ErrResourceExhausted) {
			http.Error(w, err.Error(), http.StatusInsufficientStorage)
			return
		}
		slog.Error("No se pudo crear el proceso", "pid", req.PID, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// FinishProcessHandler finaliza un proceso por pedido externo.
func FinishProcessHandler(w http.ResponseWriter, r *http.Request) {
	var req FinishProcessRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	motivo := req.Motivo
	if motivo == "" {
		motivo = "finalizado por kernel"
	}
	services.EndProcess(req.PID, motivo)
	w.WriteHeader(http.StatusOK)
}

// SyscallHandler despacha una syscall del lado usuario y devuelve el valor
// de retorno junto con la acción que el caller debe tomar.
func SyscallHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SyscallRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	resp := services.ExecuteSyscall(req)
	server.SendJsonResponse(w, resp)
}
