package engine

import "time"

// Параметры карты по умолчанию.
const (
	DefaultMapWidth  = 40
	DefaultMapHeight = 25
)

// Config хранит параметры запуска движка.
type Config struct {
	// Seed - мастер-зерно. От него зависит карта по умолчанию;
	// явно сгенерированные карты получают собственные сиды.
	Seed int64

	// MapWidth, MapHeight - размер карты по умолчанию.
	MapWidth  int
	MapHeight int
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:      time.Now().UnixNano(),
		MapWidth:  DefaultMapWidth,
		MapHeight: DefaultMapHeight,
	}
}
