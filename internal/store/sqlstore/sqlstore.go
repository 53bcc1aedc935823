package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"notodo/internal/models"
	"notodo/internal/store"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

const (
	userColumns     = "id, name, email, password_hash, created_at"
	categoryColumns = "id, owner_id, name, color, created_at"
	noteColumns     = "id, owner_id, title, content, category, is_pinned, created_at, updated_at"
	taskColumns     = "id, owner_id, title, description, priority, category, is_complete, due_date, created_at, updated_at"
)

// SQLStore implements store.Store for SQLite and PostgreSQL.
type SQLStore struct {
	db      *sqlx.DB
	dbType  DBType
	builder squirrel.StatementBuilderType
}

var _ store.Store = (*SQLStore)(nil)

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	dbType := DBType(driver)
	if dbType != SQLite && dbType != Postgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if dbType == SQLite {
		// One connection keeps :memory: databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := newStore(db, dbType)
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

func newStore(db *sqlx.DB, dbType DBType) *SQLStore {
	var placeholder squirrel.PlaceholderFormat = squirrel.Question
	if dbType == Postgres {
		placeholder = squirrel.Dollar
	}
	return &SQLStore{
		db:      db,
		dbType:  dbType,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (s *SQLStore) initSchema() error {
	timestamp, boolean := "DATETIME", "BOOLEAN"
	if s.dbType == Postgres {
		timestamp = "TIMESTAMPTZ"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			created_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			category TEXT NOT NULL,
			is_pinned ` + boolean + ` NOT NULL DEFAULT FALSE,
			created_at ` + timestamp + ` NOT NULL,
			updated_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL,
			category TEXT NOT NULL,
			is_complete ` + boolean + ` NOT NULL DEFAULT FALSE,
			due_date ` + timestamp + `,
			created_at ` + timestamp + ` NOT NULL,
			updated_at ` + timestamp + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) get(ctx context.Context, dest interface{}, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	if err := s.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *SQLStore) selectAll(ctx context.Context, dest interface{}, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}

func (s *SQLStore) exec(ctx context.Context, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return translate(err)
}

// execOne runs a statement that must touch exactly one row.
func (s *SQLStore) execOne(ctx context.Context, q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// translate maps driver constraint errors onto store errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

// User functions
func (s *SQLStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.exec(ctx, s.builder.Insert("users").
		Columns("id", "name", "email", "password_hash", "created_at").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt))
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.get(ctx, &u, s.builder.Select(userColumns).From("users").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.get(ctx, &u, s.builder.Select(userColumns).From("users").Where(squirrel.Eq{"email": email}))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Category functions
func (s *SQLStore) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.selectAll(ctx, &categories, s.builder.Select(categoryColumns).From("categories").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC"))
	return categories, err
}

func (s *SQLStore) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.exec(ctx, s.builder.Insert("categories").
		Columns("id", "owner_id", "name", "color", "created_at").
		Values(c.ID, c.OwnerID, c.Name, c.Color, c.CreatedAt))
}

func (s *SQLStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := s.get(ctx, &c, s.builder.Select(categoryColumns).From("categories").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id string) error {
	return s.execOne(ctx, s.builder.Delete("categories").Where(squirrel.Eq{"id": id}))
}

// Note functions
func (s *SQLStore) ListNotes(ctx context.Context, ownerID string) ([]models.Note, error) {
	notes := []models.Note{}
	err := s.selectAll(ctx, &notes, s.builder.Select(noteColumns).From("notes").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("is_pinned DESC", "updated_at DESC"))
	return notes, err
}

func (s *SQLStore) RecentNotes(ctx context.Context, ownerID string, limit int) ([]models.Note, error) {
	notes := []models.Note{}
	err := s.selectAll(ctx, &notes, s.builder.Select(noteColumns).From("notes").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)))
	return notes, err
}

func (s *SQLStore) CreateNote(ctx context.Context, n *models.Note) error {
	return s.exec(ctx, s.builder.Insert("notes").
		Columns("id", "owner_id", "title", "content", "category", "is_pinned", "created_at", "updated_at").
		Values(n.ID, n.OwnerID, n.Title, n.Content, n.Category, n.IsPinned, n.CreatedAt, n.UpdatedAt))
}

func (s *SQLStore) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var n models.Note
	err := s.get(ctx, &n, s.builder.Select(noteColumns).From("notes").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLStore) UpdateNote(ctx context.Context, n *models.Note) error {
	return s.execOne(ctx, s.builder.Update("notes").
		SetMap(map[string]interface{}{
			"title":      n.Title,
			"content":    n.Content,
			"category":   n.Category,
			"is_pinned":  n.IsPinned,
			"updated_at": n.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": n.ID}))
}

func (s *SQLStore) DeleteNote(ctx context.Context, id string) error {
	return s.execOne(ctx, s.builder.Delete("notes").Where(squirrel.Eq{"id": id}))
}

// Task functions
func (s *SQLStore) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.selectAll(ctx, &tasks, s.builder.Select(taskColumns).From("tasks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC"))
	return tasks, err
}

func (s *SQLStore) RecentTasks(ctx context.Context, ownerID string, limit int) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.selectAll(ctx, &tasks, s.builder.Select(taskColumns).From("tasks").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)))
	return tasks, err
}

func (s *SQLStore) CountTasks(ctx context.Context, ownerID string, completedOnly bool) (int, error) {
	where := squirrel.Eq{"owner_id": ownerID}
	if completedOnly {
		where["is_complete"] = true
	}
	var count int
	err := s.get(ctx, &count, s.builder.Select("COUNT(*)").From("tasks").Where(where))
	return count, err
}

func (s *SQLStore) CreateTask(ctx context.Context, t *models.Task) error {
	return s.exec(ctx, s.builder.Insert("tasks").
		Columns("id", "owner_id", "title", "description", "priority", "category", "is_complete", "due_date", "created_at", "updated_at").
		Values(t.ID, t.OwnerID, t.Title, t.Description, t.Priority, t.Category, t.IsComplete, t.DueDate, t.CreatedAt, t.UpdatedAt))
}

func (s *SQLStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := s.get(ctx, &t, s.builder.Select(taskColumns).From("tasks").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLStore) UpdateTask(ctx context.Context, t *models.Task) error {
	return s.execOne(ctx, s.builder.Update("tasks").
		SetMap(map[string]interface{}{
			"title":       t.Title,
			"description": t.Description,
			"priority":    t.Priority,
			"category":    t.Category,
			"is_complete": t.IsComplete,
			"due_date":    t.DueDate,
			"updated_at":  t.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": t.ID}))
}

func (s *SQLStore) DeleteTask(ctx context.Context, id string) error {
	return s.execOne(ctx, s.builder.Delete("tasks").Where(squirrel.Eq{"id": id}))
}
