// seed_catalog genera un script SQL con el catálogo inicial de artículos a partir de un CSV.
//
// Uso: go run ./cmd/seed_catalog [-latin1] [ruta/catalogo.csv]
// Columnas: name,description,category,price,quantity[,low_stock_threshold]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_items.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// catalogNamespace espacio UUIDv5: el mismo nombre produce siempre el mismo id.
var catalogNamespace = uuid.MustParse("6f1c7a52-4a0e-4f43-9d7e-2b8d1f4f0c11")

type seedItem struct {
	id          string
	name        string
	description string
	category    entity.Category
	price       decimal.Decimal
	quantity    int
	threshold   int
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 (exportado desde Excel)")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := readCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_items.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d artículos\n", outPath, len(items))
}

// readCatalog parsea y valida el CSV. La primera fila es el encabezado.
func readCatalog(r io.Reader) ([]seedItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	seen := make(map[string]bool)
	var items []seedItem
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 5 columnas", line)
		}
		name := strings.TrimSpace(rec[0])
		if name == "" || len(name) > 100 {
			return nil, fmt.Errorf("línea %d: nombre vacío o mayor a 100 caracteres", line)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("línea %d: nombre %q repetido", line, name)
		}
		seen[strings.ToLower(name)] = true
		category := entity.Category(strings.TrimSpace(rec[2]))
		if !category.Valid() {
			return nil, fmt.Errorf("línea %d: categoría %q inválida", line, rec[2])
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, rec[3])
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("línea %d: cantidad %q inválida", line, rec[4])
		}
		threshold := entity.DefaultLowStockThreshold
		if len(rec) > 5 && strings.TrimSpace(rec[5]) != "" {
			threshold, err = strconv.Atoi(strings.TrimSpace(rec[5]))
			if err != nil || threshold < 0 {
				return nil, fmt.Errorf("línea %d: umbral %q inválido", line, rec[5])
			}
		}
		items = append(items, seedItem{
			id:          uuid.NewSHA1(catalogNamespace, []byte(strings.ToLower(name))).String(),
			name:        name,
			description: strings.TrimSpace(rec[1]),
			category:    category,
			price:       price.Round(2),
			quantity:    qty,
			threshold:   threshold,
		})
	}
	return items, nil
}

func writeSQL(w io.Writer, items []seedItem) error {
	if _, err := io.WriteString(w, "-- Catálogo inicial de artículos\n-- Generado por cmd/seed_catalog\n\n"); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "INSERT INTO inventory_items (id, name, description, category, price, quantity, low_stock_threshold) VALUES\n"); err != nil {
		return err
	}
	for i, it := range items {
		sep := ","
		if i == len(items)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s', %s, %d, %d)%s\n",
			it.id, escapeSQL(it.name), escapeSQL(it.description), it.category, it.price.StringFixed(2), it.quantity, it.threshold, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "ON CONFLICT (name) DO NOTHING;\n")
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
