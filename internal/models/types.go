package models

import "time"

// DefaultCategory is the label used for tasks and notes created without one.
const DefaultCategory = "General"

type User struct {
	ID           string    `json:"id" db:"id" bson:"_id"`
	Name         string    `json:"name" db:"name" bson:"name"`
	Email        string    `json:"email" db:"email" bson:"email"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
}

// PublicUser is the part of a User that is safe to hand to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Category struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	OwnerID   string    `json:"owner" db:"owner_id" bson:"owner_id"`
	Name      string    `json:"name" db:"name" bson:"name"`
	Color     string    `json:"color" db:"color" bson:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
}

type Note struct {
	ID        string    `json:"id" db:"id" bson:"_id"`
	OwnerID   string    `json:"owner" db:"owner_id" bson:"owner_id"`
	Title     string    `json:"title" db:"title" bson:"title"`
	Content   string    `json:"content" db:"content" bson:"content"`
	Category  string    `json:"category" db:"category" bson:"category"`
	IsPinned  bool      `json:"isPinned" db:"is_pinned" bson:"is_pinned"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" bson:"updated_at"`
}

type Task struct {
	ID          string     `json:"id" db:"id" bson:"_id"`
	OwnerID     string     `json:"owner" db:"owner_id" bson:"owner_id"`
	Title       string     `json:"title" db:"title" bson:"title"`
	Description string     `json:"description" db:"description" bson:"description"`
	Priority    Priority   `json:"priority" db:"priority" bson:"priority"`
	Category    string     `json:"category" db:"category" bson:"category"`
	IsComplete  bool       `json:"isComplete" db:"is_complete" bson:"is_complete"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date" bson:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" bson:"updated_at"`
}

// ChatMessage is one turn of a notes assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
