package models

import "time"

// TeamSize — фиксированный размер состава постоянной команды.
const TeamSize = 5

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// IsRandom помечает команду, сгенерированную подборщиком под один матч.
	// Такие команды удаляются сразу после матча и не попадают в историю.
	IsRandom  bool      `json:"is_random"`
	CreatedAt time.Time `json:"created_at"`

	Members []Player `json:"members,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}
