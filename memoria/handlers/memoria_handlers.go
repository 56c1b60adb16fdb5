package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/web/server"
)

type MemoryAccessRequest struct {
	PID   uint   `json:"pid"`
	Dir   int    `json:"dir"`
	Size  int    `json:"size"`
	Datos string `json:"datos"`
}

type ShareFrameRequest struct {
	PID  uint `json:"pid"`
	Dir  int  `json:"dir"`
	Base int  `json:"base"`
}

// ReadMemoryHandler lee memoria de usuario de un proceso. Una dirección
// inválida responde 403: el proceso va a ser finalizado por el kernel.
func ReadMemoryHandler(w http.ResponseWriter, r *http.Request) {
	var req MemoryAccessRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	datos, err := services.LeerMemoria(req.PID, req.Dir, req.Size)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAccess) {
			slog.Warn("Lectura inválida de memoria de usuario", "pid", req.PID, "dir", req.Dir)
			http.Error(w, "Invalid access", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	server.SendJsonResponse(w, map[string]string{"datos": string(datos)})
}

// WriteMemoryHandler escribe memoria de usuario de un proceso.
func WriteMemoryHandler(w http.ResponseWriter, r *http.Request) {
	var req MemoryAccessRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	if err := services.EscribirMemoria(req.PID, req.Dir, []byte(req.Datos)); err != nil {
		if errors.Is(err, models.ErrInvalidAccess) {
			slog.Warn("Escritura inválida de memoria de usuario", "pid", req.PID, "dir", req.Dir)
			http.Error(w, "Invalid access", http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ShareFrameHandler mapea un marco ya vivo dentro del espacio de otro
// proceso (páginas compartidas).
func ShareFrameHandler(w http.ResponseWriter, r *http.Request) {
	var req ShareFrameRequest
	if !server.DecodeJsonRequest(w, r, &req) {
		return
	}

	if err := services.MapShared(req.PID, req.Dir, req.Base); err != nil {
		slog.Error("No se pudo compartir el marco", "pid", req.PID, "base", req.Base, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// MemoryStatusHandler informa el estado del pool de frames.
func MemoryStatusHandler(w http.ResponseWriter, r *http.Request) {
	libres := services.FramesLibres()
	totales := models.MemoryConfig.MemorySize / models.MemoryConfig.PageSize

	server.SendJsonResponse(w, map[string]int{
		"frames_libres":  libres,
		"frames_totales": totales,
	})
}
