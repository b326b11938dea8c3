package postgres

import (
	"sankofa/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Money and kg columns are decimal(12,2) on Postgres but REAL on SQLite, so
// arithmetic is rounded in SQL to keep both at two places.

func addRounded(column string, delta float64) clause.Expr {
	return gorm.Expr("ROUND(CAST("+column+" + ? AS NUMERIC), 2)", utils.Round2(delta))
}

func subRounded(column string, delta float64) clause.Expr {
	return gorm.Expr("ROUND(CAST("+column+" - ? AS NUMERIC), 2)", utils.Round2(delta))
}

// covers is a WHERE fragment true when column holds at least the bound value.
func covers(column string) string {
	return "ROUND(CAST(" + column + " AS NUMERIC), 2) >= ?"
}
