package models

// All returns every persisted model in dependency order, for AutoMigrate and test setup.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Category{},
		&Tag{},
		&Post{},
		&PostTag{},
		&Comment{},
	}
}
