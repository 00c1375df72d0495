package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT,
    role TEXT NOT NULL DEFAULT 'alumni',
    university TEXT,
    department TEXT,
    graduation_year INT,
    location TEXT,
    avatar TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS conversations (
    id UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS participants (
    conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (conversation_id, user_id)
);
CREATE TABLE IF NOT EXISTS messages (
    id UUID PRIMARY KEY,
    conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    sender_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    sent_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    read BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS mails (
    id UUID PRIMARY KEY,
    from_name TEXT NOT NULL,
    subject TEXT NOT NULL,
    preview TEXT NOT NULL,
    sent_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    read BOOLEAN NOT NULL DEFAULT FALSE,
    starred BOOLEAN NOT NULL DEFAULT FALSE,
    archived BOOLEAN NOT NULL DEFAULT FALSE,
    attachments INT NOT NULL DEFAULT 0,
    category TEXT NOT NULL,
    to_addr TEXT
);
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date DATE NOT NULL,
    start_time TEXT,
    end_time TEXT,
    location TEXT,
    address TEXT,
    type TEXT,
    category TEXT,
    max_attendees INT,
    current_attendees INT NOT NULL DEFAULT 0,
    price DOUBLE PRECISION NOT NULL DEFAULT 0,
    image TEXT,
    organizer TEXT,
    featured BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS event_registrations (
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (event_id, user_id)
);
CREATE TABLE IF NOT EXISTS donation_campaigns (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    goal DOUBLE PRECISION NOT NULL,
    raised DOUBLE PRECISION NOT NULL DEFAULT 0,
    donors INT NOT NULL DEFAULT 0,
    days_left INT NOT NULL DEFAULT 30,
    category TEXT,
    image TEXT,
    organizer TEXT,
    featured BOOLEAN NOT NULL DEFAULT FALSE,
    urgent BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS donations (
    id UUID PRIMARY KEY,
    campaign_id UUID NOT NULL REFERENCES donation_campaigns(id) ON DELETE CASCADE,
    user_id UUID REFERENCES users(id) ON DELETE SET NULL,
    amount DOUBLE PRECISION NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    receipt TEXT,
    status TEXT NOT NULL DEFAULT 'completed'
);
`

// Migrate applies the idempotent schema to the database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type demoAccount struct {
	name     string
	email    string
	password string
	role     string
}

var demoAccounts = []demoAccount{
	{name: "Admin User", email: "admin@email.com", password: "admin", role: "admin"},
	{name: "Student User", email: "student@email.com", password: "student", role: "student"},
	{name: "Alumni One", email: "alumni@email.com", password: "alumni", role: "alumni"},
}

// Seed inserts demo accounts and, on a fresh database, sample events and
// donation campaigns. Safe to run on every startup.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for _, acc := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		_, err = pool.Exec(ctx, `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role;
`, uuid.NewString(), acc.name, acc.email, string(hash), acc.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", acc.email, err)
		}
	}

	var eventCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&eventCount); err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if eventCount == 0 {
		reunion := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
		techTalk := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
		_, err := pool.Exec(ctx, `
INSERT INTO events (id, title, description, date, start_time, end_time, location, address, type, category, max_attendees, current_attendees, price, organizer, featured)
VALUES
    ($1, 'Annual Alumni Reunion', 'Join us for our biggest event of the year!', $2, '18:00', '23:00', 'University Campus - Main Hall', '123 University Ave', 'in-person', 'social', 500, 0, 0, 'Alumni Association', TRUE),
    ($3, 'Tech Talk: AI in Healthcare', 'Latest developments in AI in healthcare.', $4, '14:00', '16:00', 'Online - Zoom', 'Virtual Event', 'virtual', 'educational', 200, 0, 0, 'Tech Alumni Group', FALSE);
`, uuid.NewString(), reunion, uuid.NewString(), techTalk)
		if err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
		logger.Info().Msg("seeded sample events")
	}

	var campaignCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM donation_campaigns`).Scan(&campaignCount); err != nil {
		return fmt.Errorf("count campaigns: %w", err)
	}
	if campaignCount == 0 {
		_, err := pool.Exec(ctx, `
INSERT INTO donation_campaigns (id, title, description, goal, days_left, category, organizer, featured, urgent)
VALUES
    ($1, 'Scholarship Fund', 'Support deserving students with financial aid.', 100000, 45, 'Education', 'University Foundation', TRUE, FALSE),
    ($2, 'Emergency Relief Fund', 'Help alumni and students facing hardships.', 50000, 12, 'Emergency', 'Alumni Association', FALSE, TRUE);
`, uuid.NewString(), uuid.NewString())
		if err != nil {
			return fmt.Errorf("seed campaigns: %w", err)
		}
		logger.Info().Msg("seeded sample campaigns")
	}

	return nil
}
