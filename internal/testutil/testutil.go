// Package testutil 連接測試用 Postgres 並提供建立測試資料的輔助函數
package testutil

import (
	"context"
	"fmt"
	"log"
	"testing"

	"show-booking/config"
	"show-booking/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Setup 連接測試資料庫並套用 schema；連不到時回傳 error，由呼叫端決定略過
func Setup() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}

	if err := database.Migrate(context.Background(), testDB); err != nil {
		testDB.Close()
		return nil, nil, fmt.Errorf("failed to migrate test database: %v", err)
	}

	log.Println("Test database connected successfully")

	cleanup := func() {
		testDB.Close()
		log.Println("Test database closed")
	}

	return testDB, cleanup, nil
}

// RequireDB 沒有測試資料庫時略過測試，否則清空所有資料表
func RequireDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if pool == nil {
		t.Skip("test database unavailable")
	}

	// 清空所有測試資料，保留 schema
	_, err := pool.Exec(context.Background(), "TRUNCATE tickets, shows, venues, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// CreateUser 建立測試用的 user，密碼欄位不是有效的 bcrypt 雜湊
func CreateUser(t *testing.T, pool *pgxpool.Pool, username, email, role string) int {
	t.Helper()

	query := `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, 'x', $3)
		RETURNING id
	`

	var id int
	if err := pool.QueryRow(context.Background(), query, username, email, role).Scan(&id); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

func CreateVenue(t *testing.T, pool *pgxpool.Pool, name string, capacity int) int {
	t.Helper()

	query := `
		INSERT INTO venues (name, place, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	if err := pool.QueryRow(context.Background(), query, name, name+" Street", capacity).Scan(&id); err != nil {
		t.Fatalf("Failed to create test venue: %v", err)
	}
	return id
}

// CreateShow 建立場次，可售票數為 available
func CreateShow(t *testing.T, pool *pgxpool.Pool, name string, venueID int, date string, available int) int {
	t.Helper()

	query := `
		INSERT INTO shows (name, rating, price, date, time, ticket_available, venue_id)
		VALUES ($1, 5, 500, $2::date, '19:30', $3, $4)
		RETURNING id
	`

	var id int
	if err := pool.QueryRow(context.Background(), query, name, date, available, venueID).Scan(&id); err != nil {
		t.Fatalf("Failed to create test show: %v", err)
	}
	return id
}

// CreateTicket 直接寫入訂票紀錄，不扣減可售票數
func CreateTicket(t *testing.T, pool *pgxpool.Pool, userID, showID, numTicket int) int {
	t.Helper()

	query := `
		INSERT INTO tickets (num_ticket, show_name, place, user_id, show_id)
		SELECT $1, s.name, v.place, $2, s.id
		FROM shows s JOIN venues v ON v.id = s.venue_id
		WHERE s.id = $3
		RETURNING id
	`

	var id int
	if err := pool.QueryRow(context.Background(), query, numTicket, userID, showID).Scan(&id); err != nil {
		t.Fatalf("Failed to create test ticket: %v", err)
	}
	return id
}

// Available 讀取場次目前的可售票數
func Available(t *testing.T, pool *pgxpool.Pool, showID int) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT ticket_available FROM shows WHERE id = $1", showID).Scan(&n); err != nil {
		t.Fatalf("Failed to read ticket_available: %v", err)
	}
	return n
}

// AssertRowCount 檢查資料表的行數
func AssertRowCount(t *testing.T, pool *pgxpool.Pool, table string, expected int) {
	t.Helper()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := pool.QueryRow(context.Background(), query).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	if count != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, count)
	}
}
