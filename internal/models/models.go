package models

// All lists every table the API owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Category{},
		&Tag{},
		&SoloEvent{},
		&TeamEvent{},
	}
}
