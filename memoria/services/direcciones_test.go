package services

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/tp-2025-2c-Los-magiOS/memoria/models"
)

func TestTraduccionRechazaDireccionesDeKernel(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))

	_, err := TranslateAddress(1, models.MemoryConfig.KernelBase)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))

	_, err = TranslateAddress(1, models.MemoryConfig.KernelBase+500)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))

	_, err = TranslateAddress(1, -1)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))
}

func TestTraduccionRechazaPaginasNoMapeadas(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))

	_, err := TranslateAddress(1, 100)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))

	// Un PID sin tabla de páginas tampoco puede traducir nada.
	_, err = TranslateAddress(99, 100)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))
}

func TestTraduccionConservaElOffset(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))

	base, err := AllocateFrame(1, 0)
	require.NoError(t, err)

	phys, err := TranslateAddress(1, 13)
	require.NoError(t, err)
	assert.Equal(t, base+13, phys)

	// Segunda traducción de la misma página: ahora resuelve por TLB y tiene
	// que dar lo mismo.
	phys, err = TranslateAddress(1, 200)
	require.NoError(t, err)
	assert.Equal(t, base+200, phys)
}

func TestTraduccionPrendeLosBitsDeUso(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))

	base, err := AllocateFrame(1, 0)
	require.NoError(t, err)

	m := tabla.BuscarPorBase(base)
	require.NotNil(t, m)
	m.Uso = false
	antes := m.UltimoUso

	_, err = TranslateAddress(1, 5)
	require.NoError(t, err)

	assert.True(t, m.Uso)
	assert.Greater(t, m.UltimoUso, antes)
}

func TestLiberarInvalidaLaTLB(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))

	base, err := AllocateFrame(1, 0)
	require.NoError(t, err)

	// Cachear la traducción y después soltar el marco: la entrada de TLB no
	// puede sobrevivir al mapeo.
	_, err = TranslateAddress(1, 0)
	require.NoError(t, err)

	ReleaseFrame(base, 1)

	_, err = TranslateAddress(1, 0)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))
}

func TestFinDeProcesoVaciaSusEntradasDeTLB(t *testing.T) {
	iniciarMemoriaPrueba(t, configPrueba())
	require.NoError(t, InicializarTablaPaginas(1))
	require.NoError(t, InicializarTablaPaginas(2))

	_, err := AllocateFrame(1, 0)
	require.NoError(t, err)
	base2, err := AllocateFrame(2, 0)
	require.NoError(t, err)

	_, err = TranslateAddress(1, 0)
	require.NoError(t, err)
	_, err = TranslateAddress(2, 0)
	require.NoError(t, err)

	LiberarProceso(1)

	_, err = TranslateAddress(1, 0)
	assert.True(t, errors.Is(err, models.ErrInvalidAccess))

	// El otro proceso no pierde sus traducciones.
	phys, err := TranslateAddress(2, 7)
	require.NoError(t, err)
	assert.Equal(t, base2+7, phys)
}

func TestTLBDesactivadaConCeroEntradas(t *testing.T) {
	cfg := configPrueba()
	cfg.TlbEntries = 0
	iniciarMemoriaPrueba(t, cfg)
	require.NoError(t, InicializarTablaPaginas(1))

	base, err := AllocateFrame(1, 0)
	require.NoError(t, err)

	phys, err := TranslateAddress(1, 42)
	require.NoError(t, err)
	assert.Equal(t, base+42, phys)
}
