package psqlbuilder

import "github.com/Masterminds/squirrel"

// Пакет-обертка над squirrel с PostgreSQL-плейсхолдерами ($1, $2, ...).
// Репозитории используют его вместо прямого squirrel.StatementBuilder,
// чтобы формат плейсхолдеров задавался в одном месте.

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT builder с $-плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT builder с $-плейсхолдерами
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update создает UPDATE builder с $-плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE builder с $-плейсхолдерами
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
