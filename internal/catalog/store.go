package catalog

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MenuItem is the persisted form of a catalog item
type MenuItem struct {
	gorm.Model
	ItemID   string `gorm:"unique_index"`
	Name     string
	Price    float64
	Category string
	Position int
}

// Store loads the menu from a SQLite database. The database is seeded
// with the built-in menu on first run; afterwards the menu can be edited
// out of band and is picked up on the next start. The catalog itself
// stays read-only for the lifetime of the process.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (creating if needed) the menu database
func OpenStore(dbPath string) (*Store, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu database: %w", err)
	}

	if err := db.AutoMigrate(&MenuItem{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate menu schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the catalog, seeding the store with the default menu if
// it holds no items yet.
func (s *Store) Load() (*Catalog, error) {
	var count int64
	if err := s.db.Model(&MenuItem{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	if count == 0 {
		if err := s.seed(DefaultMenu()); err != nil {
			return nil, err
		}
	}

	var records []MenuItem
	if err := s.db.Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Item{
			ID:       r.ItemID,
			Name:     r.Name,
			Price:    r.Price,
			Category: Category(r.Category),
		}
	}

	return New(items), nil
}

func (s *Store) seed(items []Item) error {
	tx := s.db.Begin()
	for i, it := range items {
		record := MenuItem{
			ItemID:   it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Category: string(it.Category),
			Position: i,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed menu item %s: %w", it.Name, err)
		}
	}
	return tx.Commit().Error
}
