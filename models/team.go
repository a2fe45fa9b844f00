package models

import "time"

// Team - для движка генерации команда является непрозрачным идентификатором;
// имя нужно только для отображения результатов жеребьёвки.
type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
