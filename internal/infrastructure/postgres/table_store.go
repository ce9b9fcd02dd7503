package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bymsoft/inventario-lotes/internal/application/inventario"
)

var _ inventario.TableStore = (*TableStore)(nil)

// TableStore adaptador del gateway sobre PostgreSQL. Cada hoja es una tabla
// de filas crudas (pos, celdas TEXT[]) sin tipado por columna: el modelo de
// planilla se conserva tal cual, cabecera incluida, y la interpretación de
// las celdas queda del lado de la aplicación.
type TableStore struct {
	pool *pgxpool.Pool
}

// NewTableStore construye el adaptador.
func NewTableStore(pool *pgxpool.Pool) *TableStore {
	return &TableStore{pool: pool}
}

// hojas conocidas con su cabecera; también blinda los nombres interpolados en SQL.
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
				pos BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
				celdas TEXT[] NOT NULL
			)`, nombre)
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("crear hoja %s: %w", tabla, err)
		}
		var n int
		if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", nombre)).Scan(&n); err != nil {
			return fmt.Errorf("verificar hoja %s: %w", tabla, err)
		}
		if n == 0 {
			if _, err := s.pool.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (celdas) VALUES ($1)", nombre), cabecera); err != nil {
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
	rows, err := s.pool.Query(ctx, fmt.Sprintf("SELECT celdas FROM %s ORDER BY pos", nombre))
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", tabla, err)
	}
	defer rows.Close()

	var filas [][]string
	for rows.Next() {
		var celdas []string
		if err := rows.Scan(&celdas); err != nil {
			return nil, fmt.Errorf("leer hoja %s: %w", tabla, err)
		}
		filas = append(filas, celdas)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", tabla, err)
	}
	return filas, nil
}

// ReplaceTable sobreescritura destructiva en una transacción: borra todo y
// escribe cabecera + filas.
func (s *TableStore) ReplaceTable(ctx context.Context, tabla string, cabecera []string, filas [][]string) error {
	nombre, err := nombreHoja(tabla)
	if err != nil {
		return err
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", nombre)); err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (celdas) VALUES ($1)", nombre)
	if _, err := tx.Exec(ctx, insert, cabecera); err != nil {
		return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
	}
	for _, fila := range filas {
		if _, err := tx.Exec(ctx, insert, fila); err != nil {
			return fmt.Errorf("reescribir hoja %s: %w", tabla, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
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
	if _, err := s.pool.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (celdas) VALUES ($1)", nombre), fila); err != nil {
		return fmt.Errorf("anexar en hoja %s: %w", tabla, err)
	}
	return nil
}
