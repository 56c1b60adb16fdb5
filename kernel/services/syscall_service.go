package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/kernel/models"
	memoriaModels "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	memoria "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
)

// ExecuteSyscall es el único punto de entrada del lado usuario al kernel.
// Ningún argumento se usa como puntero sin antes copiar el dato a un buffer
// del kernel; un puntero inválido finaliza al proceso entero y la respuesta
// lo indica con Accion "exit".
func ExecuteSyscall(req models.SyscallRequest) models.SyscallResponse {
	pcb, ok := CurrentProcess(req.PID)
	if !ok {
		slog.Error(fmt.Sprintf("Syscall %s de un PID desconocido: %d", req.Syscall, req.PID))
		return models.SyscallResponse{Ret: -1, Accion: "error"}
	}

	slog.Info(fmt.Sprintf("## PID: %d - Syscall: %s", req.PID, req.Syscall))

	switch req.Syscall {
	case "HALT":
		return models.SyscallResponse{Ret: 0, Accion: "halt"}

	case "EXIT":
		status := arg(req, 0)
		slog.Info(fmt.Sprintf("%s: exit(%d)", pcb.Nombre, status))
		EndProcess(req.PID, "exit")
		return models.SyscallResponse{Ret: status, Accion: "exit"}

	case "CREATE":
		nombre, fatal := stageString(req.PID, arg(req, 0))
		if fatal != nil {
			return *fatal
		}
		return continuar(boolAInt(Fs.Create(nombre, arg(req, 1))))

	case "REMOVE":
		nombre, fatal := stageString(req.PID, arg(req, 0))
		if fatal != nil {
			return *fatal
		}
		return continuar(boolAInt(Fs.Remove(nombre)))

	case "OPEN":
		return syscallOpen(pcb, req)

	case "CLOSE":
		fd := arg(req, 0)
		_, i, existe := pcb.Abiertos.Find(func(f models.OpenFile) bool { return f.Fd == fd })
		if !existe {
			return continuar(-1)
		}
		pcb.Abiertos.Remove(i)
		return continuar(0)

	case "WRITE":
		return syscallWrite(pcb, req)

	case "MMAP", "MUNMAP", "CHDIR", "MKDIR", "READDIR", "ISDIR", "INUMBER":
		slog.Info(fmt.Sprintf("## PID: %d - Syscall %s no implementada", req.PID, req.Syscall))
		return continuar(-1)

	default:
		// Un número de syscall desconocido no viene de un proceso de usuario
		// sano: es un bug del despacho y no hay forma segura de seguir.
		panic(fmt.Sprintf("Wrong System call: %s", req.Syscall))
	}
}

func syscallOpen(pcb *models.PCB, req models.SyscallRequest) models.SyscallResponse {
	nombre, fatal := stageString(req.PID, arg(req, 0))
	if fatal != nil {
		return *fatal
	}
	if !Fs.Open(nombre) {
		return continuar(-1)
	}
	pcb.LastFd++
	fd := pcb.LastFd
	pcb.Abiertos.Add(models.OpenFile{Fd: fd, Nombre: nombre})
	slog.Info(fmt.Sprintf("## PID: %d - Archivo Abierto: %s - FD: %d", req.PID, nombre, fd))
	return continuar(fd)
}

// syscallWrite consume el buffer de usuario de a una página por vez: cada
// tramo se copia a un buffer del kernel antes de entregarlo al destino, así
// la validación de punteros cubre rangos que cruzan páginas.
func syscallWrite(pcb *models.PCB, req models.SyscallRequest) models.SyscallResponse {
	fd := arg(req, 0)
	dir := arg(req, 1)
	size := arg(req, 2)
	if size <= 0 {
		return continuar(0)
	}

	pageSize := memoriaModels.MemoryConfig.PageSize
	escrito := 0
	for size > 0 {
		tramo, _, err := memoria.CopyStringFromUser(req.PID, dir, minimo(size+1, pageSize))
		if err != nil {
			EndProcess(req.PID, "acceso inválido en WRITE")
			return models.SyscallResponse{Ret: -1, Accion: "exit"}
		}

		n := minimo(size, pageSize-1)
		if fd == 1 {
			slog.Info(fmt.Sprintf("## PID: %d - WRITE - %s", req.PID, tramo))
		} else {
			archivo, _, existe := pcb.Abiertos.Find(func(f models.OpenFile) bool { return f.Fd == fd })
			if !existe {
				return continuar(-1)
			}
			Fs.Write(archivo.Nombre, []byte(tramo))
		}

		escrito += n
		size -= n
		dir += n
	}
	return continuar(escrito)
}

// stageString copia un string del espacio de usuario a un buffer del kernel.
// Si el puntero es inválido finaliza al proceso y devuelve la respuesta
// fatal que el despachador debe retornar tal cual.
func stageString(pid uint, vaddr int) (string, *models.SyscallResponse) {
	s, _, err := memoria.CopyStringFromUser(pid, vaddr, memoriaModels.MemoryConfig.StringCapacity)
	if err != nil {
		slog.Warn("Puntero inválido en syscall", "pid", pid, "vaddr", vaddr, "error", err)
		EndProcess(pid, "acceso inválido")
		return "", &models.SyscallResponse{Ret: -1, Accion: "exit"}
	}
	return s, nil
}

func arg(req models.SyscallRequest, i int) int {
	if i < len(req.Args) {
		return req.Args[i]
	}
	return 0
}

func continuar(ret int) models.SyscallResponse {
	return models.SyscallResponse{Ret: ret, Accion: "continue"}
}

func boolAInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func minimo(a, b int) int {
	if a < b {
		return a
	}
	return b
}
