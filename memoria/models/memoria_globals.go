package models

import "sync"

type Config struct {
	MemorySize           int    `json:"memory_size"`
	PageSize             int    `json:"page_size"`
	KernelBase           int    `json:"kernel_base"`
	ReplacementAlgorithm string `json:"replacement_algorithm"` // "CLOCK" o "WSCLOCK"
	WsClockTau           int64  `json:"wsclock_tau"`
	TlbEntries           int    `json:"tlb_entries"`
	StringCapacity       int    `json:"string_capacity"`
	SwapFilePath         string `json:"swap_file_path"`
	LogLevel             string `json:"log_level"`
}

var MemoryConfig *Config

// UserMemory es la memoria física de usuario: un único bloque de bytes
// repartido en frames de PageSize.
var UserMemory []byte

// FreeFrames marca por índice de frame si está libre. Un frame que no está
// libre está en la tabla de marcos o en manos de un desalojo en curso.
var FreeFrames []bool

// PageTables contiene la tabla de páginas de cada proceso: página -> entrada.
var PageTables map[uint]map[int]*PageEntry

// MemoryLock protege la tabla de marcos, FreeFrames y PageTables como un
// todo. El barrido de víctimas, el alta y la baja de marcos no son atómicos
// entre sí respecto del puntero del reloj, así que toda mutación se hace
// bajo este único lock. Nunca se retiene durante la escritura a swap.
var MemoryLock sync.Mutex

type PageEntry struct {
	Frame      int // dirección física base del frame que respalda la página
	Presence   bool
	Use        bool
	Modified   bool
	SwapOffset int64 // offset en el swapfile si la página fue desalojada
}
