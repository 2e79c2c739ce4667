package store

import (
	"context"
	"errors"
	"fmt"

	"user-hub/internal/database"
	"user-hub/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken 表示 email 已被註冊（唯一鍵衝突）
var ErrEmailTaken = errors.New("email already registered")

// WeekdayUser 週別查詢的單筆投影，Weekday 為 0=Sunday … 6=Saturday
type WeekdayUser struct {
	Weekday int
	Name    string
	Email   string
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, address, latitude, longitude, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, registered_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Address,
		u.Latitude,
		u.Longitude,
		u.Status,
	)
	if err := row.Scan(&u.ID, &u.RegisteredAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("CreateUser: %w", ErrEmailTaken)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, address, latitude, longitude, status, registered_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Address,
		&u.Latitude,
		&u.Longitude,
		&u.Status,
		&u.RegisteredAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, address, latitude, longitude, status, registered_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Address,
		&u.Latitude,
		&u.Longitude,
		&u.Status,
		&u.RegisteredAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CountUsers(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return n, nil
}

// ToggleAllUserStatus 以單一 UPDATE 翻轉所有使用者狀態 (active↔inactive)
func ToggleAllUserStatus(ctx context.Context, db database.DB) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END`,
	)
	if err != nil {
		return fmt.Errorf("ToggleAllUserStatus: %w", err)
	}
	return nil
}

// ListUsersByWeekday 回傳註冊日落在指定星期的使用者，依 id 排序
func ListUsersByWeekday(ctx context.Context, db database.DB, days []int) ([]WeekdayUser, error) {
	weekdays := make([]int32, len(days))
	for i, d := range days {
		weekdays[i] = int32(d)
	}
	rows, err := db.Query(ctx,
		`SELECT EXTRACT(DOW FROM registered_at)::int, name, email
		 FROM users
		 WHERE EXTRACT(DOW FROM registered_at)::int = ANY($1)
		 ORDER BY id`,
		weekdays,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsersByWeekday: %w", err)
	}
	defer rows.Close()

	var out []WeekdayUser
	for rows.Next() {
		var wu WeekdayUser
		if err := rows.Scan(&wu.Weekday, &wu.Name, &wu.Email); err != nil {
			return nil, fmt.Errorf("ListUsersByWeekday: %w", err)
		}
		out = append(out, wu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsersByWeekday: %w", err)
	}
	return out, nil
}
