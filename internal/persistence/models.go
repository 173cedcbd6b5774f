package persistence

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category groups rooms under a unique, non-blank name.
type Category struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:120;uniqueIndex;not null"`
	Rooms     []*Room `gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time
}

// TableName pins the table name used by every dialect.
func (Category) TableName() string { return "categories" }

// AddRoom attaches room to the category and points the room back at it.
// It is the only place where both sides of the relation are changed.
func (c *Category) AddRoom(room *Room) {
	if c == nil || room == nil {
		return
	}
	c.Rooms = append(c.Rooms, room)
	room.Category = c
}

// BeforeSave rejects blank names before they reach the database.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrConstraintViolation
	}
	return nil
}

// Room is a bookable space. The category is optional.
type Room struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:120;not null"`
	Capacity   int    `gorm:"not null"`
	CategoryID *uint  `gorm:"index"`
	Category   *Category
	CreatedAt  time.Time
}

// TableName pins the table name used by every dialect.
func (Room) TableName() string { return "rooms" }

// CategoryName returns the linked category name or "" when the room has none.
func (r Room) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Name
}

// BeforeSave copies the key of an attached category into CategoryID.
func (r *Room) BeforeSave(tx *gorm.DB) error {
	if r.Category != nil && r.Category.ID != 0 {
		id := r.Category.ID
		r.CategoryID = &id
	}
	return nil
}

// User is the person behind a reservation. A new row is written per booking.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	LastName  string `gorm:"size:120"`
	FirstName string `gorm:"size:120"`
	Email     string `gorm:"size:190"`
	CreatedAt time.Time
}

// TableName pins the table name used by every dialect.
func (User) TableName() string { return "users" }

// Reservation books one room for one user over [StartsAt, EndsAt].
type Reservation struct {
	ID        uint      `gorm:"primaryKey"`
	StartsAt  time.Time `gorm:"not null;index"`
	EndsAt    time.Time `gorm:"not null"`
	Label     string    `gorm:"size:120"`
	RoomID    uint      `gorm:"not null;index"`
	Room      *Room
	UserID    uint `gorm:"not null;index"`
	User      *User
	CreatedAt time.Time
}

// TableName pins the table name used by every dialect.
func (Reservation) TableName() string { return "reservations" }

// BeforeSave copies the keys of attached room and user records.
func (r *Reservation) BeforeSave(tx *gorm.DB) error {
	if r.Room != nil && r.Room.ID != 0 {
		r.RoomID = r.Room.ID
	}
	if r.User != nil && r.User.ID != 0 {
		r.UserID = r.User.ID
	}
	if r.RoomID == 0 || r.UserID == 0 {
		return ErrConstraintViolation
	}
	return nil
}
