package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// constraintName nombre del constraint violado, o "".
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// escapeLike escapa los comodines de LIKE para buscar el término literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func likePattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// orderBy arma la cláusula ORDER BY con desempate por id. Solo acepta columnas del mapa.
func orderBy(columns map[string]string, req repository.PageRequest, fallback string) string {
	col, ok := columns[req.SortBy]
	if !ok {
		col = fallback
	}
	dir := "ASC"
	if req.SortDir == repository.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
}

// nullIfEmpty guarda "" como NULL (columnas únicas opcionales).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func insertSQL(table string, cols []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (@%s)",
		table, strings.Join(cols, ", "), strings.Join(cols, ", @"))
}

// updateSQL actualiza todas las columnas salvo las inmutables.
func updateSQL(table string, cols []string, immutable ...string) string {
	skip := make(map[string]bool, len(immutable))
	for _, c := range immutable {
		skip[c] = true
	}
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if !skip[c] {
			sets = append(sets, c+" = @"+c)
		}
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = @id", table, strings.Join(sets, ", "))
}

// collect ejecuta la consulta y escanea cada fila con scan.
func collect[T any](ctx context.Context, q Querier, op, sql string, args pgx.NamedArgs, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()
	list := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	return list, nil
}

func count(ctx context.Context, q Querier, op, sql string, args pgx.NamedArgs) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, sql, args).Scan(&n); err != nil {
		return 0, domain.NewStoreError(op, err)
	}
	return n, nil
}

func exists(ctx context.Context, q Querier, op, sql string, args pgx.NamedArgs) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, sql, args).Scan(&ok); err != nil {
		return false, domain.NewStoreError(op, err)
	}
	return ok, nil
}

// page cuenta y lista con el mismo WHERE.
func page[T any](
	ctx context.Context, q Querier, op, table, columns, where string,
	args pgx.NamedArgs, order string, req repository.PageRequest,
	scan func(pgx.Row) (T, error),
) (repository.Page[T], error) {
	total, err := count(ctx, q, op, "SELECT COUNT(*) FROM "+table+" WHERE "+where, args)
	if err != nil {
		return repository.Page[T]{}, err
	}
	listArgs := pgx.NamedArgs{"limit": req.Size, "offset": req.Offset()}
	for k, v := range args {
		listArgs[k] = v
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s %s LIMIT @limit OFFSET @offset", columns, table, where, order)
	list, err := collect(ctx, q, op, sql, listArgs, scan)
	if err != nil {
		return repository.Page[T]{}, err
	}
	return repository.NewPage(list, req, total), nil
}
