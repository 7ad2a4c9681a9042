package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isSerializationConflict reconoce serialization_failure (40001) y deadlock_detected (40P01):
// la transacción puede reintentarse completa.
func isSerializationConflict(err error) bool {
	switch pgCode(err) {
	case "40001", "40P01":
		return true
	}
	return false
}

// isForeignKeyViolation 23503: la categoría o el proveedor referido no existe.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// nullID guarda un id opcional vacío como NULL.
func nullID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// likePattern arma el patrón de "contiene" para ILIKE escapando comodines.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// isCheckViolation 23514: una fila violó un CHECK (p. ej. existencia negativa).
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

// validID indica si id puede compararse contra una columna UUID. Un id mal formado no
// existe: se responde como fila ausente sin llegar a la base.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// noRow ErrNoRows o invalid_text_representation (22P02) sobre una clave: la fila no existe.
func noRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// limitArg convierte Limit <= 0 en NULL (sin límite) para LIMIT $n.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
