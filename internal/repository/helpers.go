package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// buildUpdate assembles a partial UPDATE statement from the provided
// field map, mirroring the dashboard's edit forms which only send the
// columns the user changed. Keys are sorted so the statement is stable.
func buildUpdate(table string, fields map[string]interface{}, id int64, returning string) (string, []interface{}) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	set := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		set = append(set, fmt.Sprintf("%s = $%d", column, i+1))
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(set, ", "), len(args), returning)
	return query, args
}

// execDelete removes a row by id, translating "nothing deleted" into
// sql.ErrNoRows so handlers can answer 404.
func execDelete(ctx context.Context, db *sqlx.DB, table string, id int64) error {
	res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
