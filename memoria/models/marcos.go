package models

import (
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/utils/list"
)

// Referencia registra un mapeo de usuario sobre un marco: qué proceso lo
// tiene mapeado y en qué dirección virtual de su espacio.
type Referencia struct {
	PID   uint
	Vaddr int
}

// Marco es la entrada de la tabla de marcos para un frame físico prestado a
// páginas de usuario. Un marco compartido entre k procesos tiene RefCnt == k
// y exactamente k referencias; esa igualdad es invariante.
type Marco struct {
	Base        int  // dirección física base, única mientras el marco viva
	Uso         bool // bit de uso del algoritmo de reloj
	Modificado  bool
	UltimoUso   int64 // marca de último acceso, para WSCLOCK
	RefCnt      int
	Referencias *list.ArrayList[Referencia]
	EnDesalojo  bool // la víctima ya fue elegida y el desalojo está en curso
}

func NewMarco(base int) *Marco {
	return &Marco{
		Base:        base,
		Referencias: &list.ArrayList[Referencia]{},
	}
}
