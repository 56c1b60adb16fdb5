package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memoria "github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
)

func TestInitProcessAsignaSusPaginas(t *testing.T) {
	iniciarKernelPrueba(t)

	require.NoError(t, InitProcess(1, "proc", 3))
	assert.Equal(t, 5, memoria.FramesLibres())

	pcb, vivo := CurrentProcess(1)
	require.True(t, vivo)
	assert.Equal(t, "proc", pcb.Nombre)
	assert.Equal(t, 3, pcb.Paginas)

	// Todas sus páginas traducen.
	for i := 0; i < 3; i++ {
		_, err := memoria.TranslateAddress(1, i*256)
		assert.NoError(t, err)
	}
}

func TestInitProcessDuplicado(t *testing.T) {
	iniciarKernelPrueba(t)

	require.NoError(t, InitProcess(1, "proc", 1))
	assert.Error(t, InitProcess(1, "otro", 1))
}

func TestInitProcessConMemoriaLlenaDesaloja(t *testing.T) {
	iniciarKernelPrueba(t)

	// 8 frames en total: el segundo proceso fuerza desalojos y aún así
	// tiene que crearse.
	require.NoError(t, InitProcess(1, "primero", 6))
	require.NoError(t, InitProcess(2, "segundo", 6))

	_, vivo := CurrentProcess(2)
	assert.True(t, vivo)
	for i := 0; i < 6; i++ {
		_, err := memoria.TranslateAddress(2, i*256)
		assert.NoError(t, err)
	}
}

func TestEndProcessDevuelveLaMemoria(t *testing.T) {
	iniciarKernelPrueba(t)

	require.NoError(t, InitProcess(1, "proc", 4))
	EndProcess(1, "prueba")

	_, vivo := CurrentProcess(1)
	assert.False(t, vivo)
	assert.Equal(t, 8, memoria.FramesLibres())
}

func TestEndProcessDesconocidoEsNoOp(t *testing.T) {
	iniciarKernelPrueba(t)
	EndProcess(42, "no existe") // no tiene que explotar
}
