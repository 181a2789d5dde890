// Package storage хранит документы карт в SQLite.
//
// Схема создаётся кодом при открытии; формат документа - JSON из
// pkg/tilemap, база хранит его как текст плюс метаданные для листинга.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tessera-server/pkg/tilemap"
)

// ErrNotFound возвращается при запросе несуществующей карты.
var ErrNotFound = errors.New("storage: map not found")

// Store - соединение с базой карт.
type Store struct {
	conn *sqlx.DB
}

// Record - метаданные сохранённой карты.
type Record struct {
	Name      string `db:"name"`
	Topology  string `db:"topology"`
	Seed      int64  `db:"seed"`
	UpdatedAt int64  `db:"updated_at"`
}

// Open открывает (или создаёт) базу по указанному пути.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close закрывает соединение.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		name TEXT PRIMARY KEY,
		topology TEXT NOT NULL,
		seed INTEGER NOT NULL,
		doc TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_topology ON maps(topology);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveMap сохраняет документ карты под именем, перезаписывая прежнюю версию.
func (s *Store) SaveMap(name string, doc *tilemap.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("encode map %q: %w", name, err)
	}

	_, err = s.conn.Exec(
		`INSERT OR REPLACE INTO maps (name, topology, seed, doc, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, string(doc.Topology), doc.Seed, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save map %q: %w", name, err)
	}
	return nil
}

// LoadMap загружает документ карты по имени.
func (s *Store) LoadMap(name string) (*tilemap.Document, error) {
	var data string
	err := s.conn.Get(&data, "SELECT doc FROM maps WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}

	doc, err := tilemap.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}
	return doc, nil
}

// ListMaps возвращает метаданные всех сохранённых карт.
func (s *Store) ListMaps() ([]Record, error) {
	var records []Record
	err := s.conn.Select(&records,
		"SELECT name, topology, seed, updated_at FROM maps ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	return records, nil
}

// DeleteMap удаляет карту. Удаление несуществующей карты - не ошибка.
func (s *Store) DeleteMap(name string) error {
	if _, err := s.conn.Exec("DELETE FROM maps WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete map %q: %w", name, err)
	}
	return nil
}
