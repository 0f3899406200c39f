package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const catalogCSV = `name,description,category,price,quantity,low_stock_threshold
Café de Huila,Grano tostado 500g,Food,12.5,40,
Taza D'Oro,Cerámica,Home,4.999,3,5
`

func TestReadCatalog_ValidaYNormaliza(t *testing.T) {
	items, err := readCatalog(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Café de Huila", items[0].name)
	assert.Equal(t, 10, items[0].threshold, "umbral vacío usa el valor por defecto")
	assert.Equal(t, "5.00", items[1].price.StringFixed(2))
	assert.Equal(t, 5, items[1].threshold)

	again, err := readCatalog(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, items[0].id, again[0].id, "ids deterministas por nombre")
}

func TestReadCatalog_Latin1(t *testing.T) {
	encoded, _, err := transform.String(charmap.ISO8859_1.NewEncoder(), catalogCSV)
	require.NoError(t, err)

	items, err := readCatalog(transform.NewReader(strings.NewReader(encoded), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	assert.Equal(t, "Café de Huila", items[0].name)
}

func TestReadCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"categoría": "h\nX,,Toys,1,1\n",
		"precio":    "h\nX,,Home,-1,1\n",
		"cantidad":  "h\nX,,Home,1,dos\n",
		"repetido":  "h\nX,,Home,1,1\nx,,Home,1,1\n",
		"columnas":  "h\nX,,Home\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readCatalog(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	items, err := readCatalog(strings.NewReader(catalogCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, items))
	sql := buf.String()
	assert.Contains(t, sql, "'Taza D''Oro'")
	assert.Contains(t, sql, "ON CONFLICT (name) DO NOTHING;")
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO"))
}
