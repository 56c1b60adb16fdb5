package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/services"
)

func iniciarEntorno(t *testing.T) {
	t.Helper()
	models.MemoryConfig = &models.Config{
		MemorySize:           1024,
		PageSize:             256,
		KernelBase:           2048,
		ReplacementAlgorithm: "CLOCK",
		TlbEntries:           4,
		StringCapacity:       64,
		SwapFilePath:         "swap_prueba.bin",
	}
	services.InitMemoria()
}

func postJson(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	datos, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(datos))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLecturaYEscrituraDeMemoria(t *testing.T) {
	iniciarEntorno(t)
	require.NoError(t, services.InicializarTablaPaginas(1))
	_, err := services.AllocateFrame(1, 0)
	require.NoError(t, err)

	rec := postJson(t, WriteMemoryHandler, MemoryAccessRequest{PID: 1, Dir: 10, Datos: "hola"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJson(t, ReadMemoryHandler, MemoryAccessRequest{PID: 1, Dir: 10, Size: 4})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hola", resp["datos"])
}

func TestAccesoInvalidoResponde403(t *testing.T) {
	iniciarEntorno(t)
	require.NoError(t, services.InicializarTablaPaginas(1))

	rec := postJson(t, ReadMemoryHandler, MemoryAccessRequest{PID: 1, Dir: 5000, Size: 4})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJson(t, WriteMemoryHandler, MemoryAccessRequest{PID: 1, Dir: 100, Datos: "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEstadoDeMemoria(t *testing.T) {
	iniciarEntorno(t)
	require.NoError(t, services.InicializarTablaPaginas(1))
	_, err := services.AllocateFrame(1, 0)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	MemoryStatusHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp["frames_totales"])
	assert.Equal(t, 3, resp["frames_libres"])
}
