package models

import (
	"sync"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/list"
)

type Config struct {
	PortKernel int    `json:"port_kernel"`
	LogLevel   string `json:"log_level"`
}

var KernelConfig *Config

// PCB es la entrada mínima de la tabla de procesos: lo justo para etiquetar
// referencias de marcos y llevar los archivos abiertos del proceso.
type PCB struct {
	PID      uint
	Nombre   string
	Paginas  int
	LastFd   int
	Abiertos *list.ArrayList[OpenFile]
}

type OpenFile struct {
	Fd     int
	Nombre string
}

var ProcessTable map[uint]*PCB
var ProcessLock sync.RWMutex

// SyscallRequest llega del lado usuario con argumentos crudos: los enteros
// pueden ser punteros a su espacio virtual y no se confía en ninguno hasta
// pasar por el traductor.
type SyscallRequest struct {
	PID     uint   `json:"pid"`
	Syscall string `json:"syscall"`
	Args    []int  `json:"args"`
}

type SyscallResponse struct {
	Ret    int    `json:"ret"`
	Accion string `json:"accion"` // "continue", "exit", "halt" o "error"
}
