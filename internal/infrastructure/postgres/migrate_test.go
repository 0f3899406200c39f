package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// checkList devuelve el contenido de "CHECK (<columna> IN (...))" en la migración inicial.
func checkList(t *testing.T, column string) string {
	t.Helper()
	sql, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	re := regexp.MustCompile(`CHECK \(` + column + ` IN \(([^)]*)\)\)`)
	m := re.FindSubmatch(sql)
	require.NotNil(t, m, "no se encontró CHECK para %s", column)
	return string(m[1])
}

// ─── Enumeraciones: el esquema acepta lo mismo que el dominio ───────────────

func TestMigracion_EstadosDePedido(t *testing.T) {
	list := checkList(t, "status")
	for _, s := range entity.OrderStatuses {
		require.True(t, s.Valid())
		assert.Contains(t, list, "'"+string(s)+"'", "estado %s válido en dominio pero rechazado por la BD", s)
	}
}

func TestMigracion_TiposDeMovimiento(t *testing.T) {
	list := checkList(t, "type")
	for _, mt := range []entity.MovementType{entity.MovementPurchase, entity.MovementSale, entity.MovementReturn, entity.MovementAdjustment} {
		assert.Contains(t, list, "'"+string(mt)+"'")
	}
}

func TestMigracion_Categorias(t *testing.T) {
	list := checkList(t, "category")
	for _, c := range []entity.Category{entity.CategoryElectronics, entity.CategoryClothing, entity.CategoryHome, entity.CategoryFood, entity.CategoryOther} {
		require.True(t, c.Valid())
		assert.Contains(t, list, "'"+string(c)+"'")
	}
}

func TestMigracion_Monedas(t *testing.T) {
	list := checkList(t, "currency")
	for _, c := range []entity.Currency{entity.CurrencyUSD, entity.CurrencyETB, entity.CurrencyNGN, entity.CurrencyKES, entity.CurrencyGBP} {
		require.True(t, c.Valid())
		assert.Contains(t, list, "'"+string(c)+"'")
	}
}
