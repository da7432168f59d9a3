//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"reviewkit/internal/domain"
	mysqlsource "reviewkit/internal/storage/mysql"
)

const schemaSQL = `
CREATE TABLE tbl_location (
    location_id    VARCHAR(64) PRIMARY KEY,
    location_title VARCHAR(255)
);
CREATE TABLE tbl_location_review (
    reviewId          VARCHAR(64) PRIMARY KEY,
    location_id       VARCHAR(64) NOT NULL,
    displayName       VARCHAR(255),
    starRating_number DOUBLE,
    comment           TEXT,
    createTime        DATETIME,
    is_deleted        TINYINT NULL
);
`

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=reviewkit",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/reviewkit?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedReview(t *testing.T, db *sql.DB, id, locationID, reviewer string, rating float64, text string, createdAt time.Time, deleted any) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO tbl_location_review (reviewId, location_id, displayName, starRating_number, comment, createTime, is_deleted)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, locationID, reviewer, rating, text, createdAt, deleted)
	if err != nil {
		t.Fatalf("seed review %s: %v", id, err)
	}
}

func TestSource_MySQL_FetchReviews(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO tbl_location (location_id, location_title) VALUES (?, ?)`,
		"loc-1", "Bosphorus Tours"); err != nil {
		t.Fatalf("seed location: %v", err)
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedReview(t, db, "r-old", "loc-1", "Ana", 4, "good trip", base, 0)
	seedReview(t, db, "r-mid", "loc-1", "Bob", 3, "fine", base.Add(24*time.Hour), nil)
	seedReview(t, db, "r-new", "loc-1", "Cem", 5, "amazing guide", base.Add(48*time.Hour), 0)
	seedReview(t, db, "r-del", "loc-1", "Eve", 1, "spam", base.Add(72*time.Hour), 1)
	seedReview(t, db, "r-other", "loc-2", "Ana", 5, "different place", base, 0)

	src := mysqlsource.New(db)

	b, err := src.GetBusiness(ctx, "loc-1")
	if err != nil {
		t.Fatalf("GetBusiness: %v", err)
	}
	if b.ID != "loc-1" || b.Name != "Bosphorus Tours" {
		t.Fatalf("unexpected business: %+v", b)
	}

	if _, err := src.GetBusiness(ctx, "loc-missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Deleted rows and other locations stay out; order is newest first.
	got, err := src.FetchReviews(ctx, "loc-1", 10)
	if err != nil {
		t.Fatalf("FetchReviews: %v", err)
	}
	wantOrder := []string{"r-new", "r-mid", "r-old"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d reviews, got %d: %+v", len(wantOrder), len(got), got)
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[0].Reviewer != "Cem" || got[0].Rating != 5 || got[0].Text != "amazing guide" {
		t.Fatalf("unexpected newest review: %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(base.Add(48 * time.Hour)) {
		t.Fatalf("unexpected createTime: %v", got[0].CreatedAt)
	}

	// Truncation keeps the most recent ones.
	got, err = src.FetchReviews(ctx, "loc-1", 2)
	if err != nil {
		t.Fatalf("FetchReviews limited: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r-new" || got[1].ID != "r-mid" {
		t.Fatalf("unexpected limited fetch: %+v", got)
	}

	// A location with nothing but deleted reviews yields an empty result, not an error.
	if _, err := db.Exec(`INSERT INTO tbl_location (location_id, location_title) VALUES (?, ?)`,
		"loc-3", "Ghost Town"); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	seedReview(t, db, "r-gone", "loc-3", "Ana", 2, "bad", base, 1)
	got, err = src.FetchReviews(ctx, "loc-3", 10)
	if err != nil {
		t.Fatalf("FetchReviews empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no reviews, got %+v", got)
	}
}
