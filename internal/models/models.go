package models

import "time"

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
}

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Appeal is one archived citizen appeal. CategoryName is filled by the
// listing query's join and is not a stored column.
type Appeal struct {
	ID           int64  `db:"id"`
	Number       string `db:"number"`
	Date         Date   `db:"date"`
	CategoryID   int64  `db:"category_id"`
	CategoryName string `db:"category_name"`
	Status       string `db:"status"`
	Applicant    string `db:"applicant"`
	Subject      string `db:"subject"`
}

type News struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type CategoryStat struct {
	Name  string `db:"name"`
	Count int    `db:"count"`
}

type YearStat struct {
	Year  string `db:"year"`
	Count int    `db:"count"`
}
