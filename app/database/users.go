package database

import (
	"context"

	"github.com/isina-nej/unipath/app/models"
)

const (
	insertUser        = `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`
	getUserByUsername = `SELECT id, username, email, password_hash FROM users WHERE username = $1`
	getUserByID       = `SELECT id, username, email, password_hash FROM users WHERE id = $1`
)

// CreateUser stores user with an already hashed password and sets user.ID.
func CreateUser(ctx context.Context, q Querier, user *models.User) error {
	return q.QueryRowContext(ctx, insertUser, user.Username, user.Email, user.Password).Scan(&user.ID)
}

func GetUserByUsername(ctx context.Context, q Querier, username string) (*models.User, error) {
	user := &models.User{}
	err := q.QueryRowContext(ctx, getUserByUsername, username).Scan(&user.ID, &user.Username, &user.Email, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(ctx context.Context, q Querier, id int64) (*models.User, error) {
	user := &models.User{}
	err := q.QueryRowContext(ctx, getUserByID, id).Scan(&user.ID, &user.Username, &user.Email, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}
