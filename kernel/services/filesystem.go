package services

import (
	"sync"
)

// Filesystem es el contrato que el borde de syscalls necesita de su
// colaborador de archivos. El subsistema no conoce la implementación: solo
// le entrega nombres ya copiados a buffers propios del kernel.
type Filesystem interface {
	Create(nombre string, tamanio int) bool
	Remove(nombre string) bool
	Open(nombre string) bool
	Write(nombre string, datos []byte) int
}

// Fs es el colaborador activo; los tests lo reemplazan por fakes.
var Fs Filesystem = NewFilesystemMemoria()

// FilesystemMemoria respalda los archivos en mapas en memoria.
type FilesystemMemoria struct {
	mu       sync.Mutex
	archivos map[string][]byte
}

func NewFilesystemMemoria() *FilesystemMemoria {
	return &FilesystemMemoria{archivos: make(map[string][]byte)}
}

func (f *FilesystemMemoria) Create(nombre string, tamanio int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, existe := f.archivos[nombre]; existe || nombre == "" {
		return false
	}
	if tamanio < 0 {
		tamanio = 0
	}
	f.archivos[nombre] = make([]byte, 0, tamanio)
	return true
}

func (f *FilesystemMemoria) Remove(nombre string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, existe := f.archivos[nombre]; !existe {
		return false
	}
	delete(f.archivos, nombre)
	return true
}

func (f *FilesystemMemoria) Open(nombre string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, existe := f.archivos[nombre]
	return existe
}

func (f *FilesystemMemoria) Write(nombre string, datos []byte) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	contenido, existe := f.archivos[nombre]
	if !existe {
		return -1
	}
	f.archivos[nombre] = append(contenido, datos...)
	return len(datos)
}
