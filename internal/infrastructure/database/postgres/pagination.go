package postgres

import (
	"fmt"
	"strings"

	"sankofa/pkg/utils"

	"gorm.io/gorm"
)

// paginate counts the rows matched by query and loads the requested page
// into dest. query is left untouched so callers may reuse it.
func paginate(query *gorm.DB, page, pageSize int, order string, dest interface{}) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	page, pageSize = utils.NormalizePage(page, pageSize)
	err := query.Session(&gorm.Session{}).
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(dest).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func likePattern(s string) string {
	return "%" + toLower(s) + "%"
}
