package repositories

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// jsonArrayContains строит условие "value входит в jsonb-массив column".
// На Postgres это containment-оператор @> по jsonb-колонке. У sqlite
// (тестовый движок) оператора @> нет, jsonb-колонка хранится текстом,
// поэтому проверяем вхождение закавыченного значения подстрокой.
func jsonArrayContains(db *gorm.DB, column, value string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		member, _ := json.Marshal([]string{value})
		return db.Where(column+" @> ?", datatypes.JSON(member))
	}
	quoted, _ := json.Marshal(value)
	return db.Where(column+" LIKE ?", "%"+string(quoted)+"%")
}
