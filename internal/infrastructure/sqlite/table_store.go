package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver SQLite puro Go

	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

var _ inventario.TableStore = (*TableStore)(nil)

// TableStore adaptador del gateway sobre SQLite, para despliegues de una sola
// máquina y para tests (":memory:"). Mismo modelo de planilla que el adaptador
// de PostgreSQL: una tabla por hoja con filas (pos, celdas), celdas en JSON.
type TableStore struct {
	db *sqlx.DB
}

// Open abre (o crea) la base en la ruta dada. ":memory:" para efímera.
func Open(path string) (*TableStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// El archivo se comparte entre peticiones; una única conexión evita
	// "database is locked" y es obligatorio para que :memory: no se esfume.
	db.SetMaxOpenConns(1)
	return &TableStore{db: db}, nil
}

// Close cierra la base.
func (s *TableStore) Close() error {
	return s.db.Close()
}

var hojas = map[string][]string{
	inventario.TablaInventario:  inventario.CabeceraInventario,
	inventario.TablaStockMinimo: inventario.CabeceraStockMinimo,
	inventario.TablaMovimientos: inventario.CabeceraMovimientos,
}

func nombreHoja(tabla string) (string, error) {
	if _, ok := hojas[tabla]; !ok {
		return "", fmt.Errorf("hoja desconocida: %q", tabla)
	}
	return "hoja_" + tabla, nil
}

// EnsureTables crea las hojas que falten y les deja la fila de cabecera.
func (s *TableStore) EnsureTables(ctx context.Context) error {
	for tabla, cabecera := range hojas {
		nombre, err := nombreHoja(tabla)
		if err != nil {
			return err
		}
		ddl := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				pos INTEGER PRIMARY KEY AUTOINCREMENT,
				celdas TEXT NOT NULL
			)`, nombre)
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("crear hoja %s: %w", tabla, err)
		}
		var n int
		if err := s.db.GetContext(ctx, &n, fmt.Sprintf("SELECT count(*) FROM %s", nombre)); err != nil {
			return fmt.Errorf("verificar hoja %s: %w", tabla, err)
		}
		if n == 0 {
			if err := s.insertar(ctx, nombre, cabecera); err != nil {
				return fmt.Errorf("cabecera hoja %s: %w", tabla, err)
			}
		}
	}
	return nil
}

// LoadTable devuelve todas las filas en orden de posición, cabecera incluida.
func (s *TableStore) LoadTable(ctx context.Context, tabla string) ([][]string, error) {
	nombre, err := nombreHoja(tabla)
	if err != nil {
		return nil, err
	}
	var crudas []string
	if err := s.db.SelectContext(ctx, &crudas,
		fmt.Sprintf("SELECT celdas FROM %s ORDER BY pos", nombre)); err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", tabla, err)
	}
	filas := make([][]string, 0, len(crudas))
	for _, c := range crudas {
		var celdas []string
		if err := json.Unmarshal([]byte(c), &celdas); err != nil {
			return nil, fmt.Errorf("leer hoja %s: %w", tabla, err)
		}
		filas = append(filas, celdas)
	}
	return filas, nil
}

// ReplaceTable sobreescritura destructiva en una transacción.
func (s *TableStore) ReplaceTable(ctx context.Context, tabla string, cabecera []string, filas [][]string) error {
	nombre, err := nombreHoja(tabla)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", nombre)); err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	todas := append([][]string{cabecera}, filas...)
	for _, fila := range todas {
		celdas, err := json.Marshal(fila)
		if err != nil {
			return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (celdas) VALUES (?)", nombre), string(celdas)); err != nil {
			return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	return nil
}

// AppendRow agrega una fila al final sin tocar el resto.
func (s *TableStore) AppendRow(ctx context.Context, tabla string, fila []string) error {
	nombre, err := nombreHoja(tabla)
	if err != nil {
		return err
	}
	if err := s.insertar(ctx, nombre, fila); err != nil {
		return fmt.Errorf("anexar en hoja %s: %w", tabla, err)
	}
	return nil
}

func (s *TableStore) insertar(ctx context.Context, nombre string, fila []string) error {
	celdas, err := json.Marshal(fila)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (celdas) VALUES (?)", nombre), string(celdas))
	return err
}
