package store

import (
	"database/sql"

	"github.com/adr1ann32323/restorApp/internal/models"
)

// userRecord is a User plus the password hash, which never leaves this
// package boundary in model form.
type userRecord struct {
	models.User
	PasswordHash string
}

func (s *Store) CreateUser(name, email, hashedPassword string, role models.Role) (*models.User, error) {
	query := `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`
	res, err := s.DB.Exec(query, name, email, hashedPassword, role)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(int(id))
}

// GetUserByEmail returns nil, nil when no such user exists.
func (s *Store) GetUserByEmail(email string) (*models.User, string, error) {
	query := `SELECT id, name, email, password, role, created_at FROM users WHERE email = ?`
	row := s.DB.QueryRow(query, email)

	var rec userRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.Role, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &rec.User, rec.PasswordHash, nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	query := `SELECT id, name, email, role, created_at FROM users WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
