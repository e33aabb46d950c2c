package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and makes sure the schema is in place.
func Init(databaseURL string) {
	var err error
	Conn, err = pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureUsersTable()
	ensureSkillsTable()
	ensureProjectsTables()
	ensureSwapRequestsTable()
	ensureRatingsTable()
	ensureReportsTable()
	ensurePlatformMessagesTable()
	ensureAdminLogsTable()
	ensureNotificationsTable()
}

func ensureUsersTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            profile_photo TEXT NULL,
            availability TEXT NOT NULL DEFAULT '',
            is_public BOOLEAN NOT NULL DEFAULT TRUE,
            role TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('USER','ADMIN','SUPER_ADMIN')),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            banned_at TIMESTAMP WITH TIME ZONE NULL,
            banned_reason TEXT NULL,
            last_login_at TIMESTAMP WITH TIME ZONE NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_users_public ON users(is_public) WHERE is_public = TRUE;
    `)
	if err != nil {
		log.Printf("failed to ensure users table: %v", err)
	}
}

func ensureSkillsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS skills (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            type TEXT NOT NULL CHECK (type IN ('OFFERED','WANTED')),
            is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
            flag_reason TEXT NULL,
            is_approved BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_skills_user ON skills(user_id);
        CREATE INDEX IF NOT EXISTS idx_skills_name ON skills(LOWER(name));
        CREATE INDEX IF NOT EXISTS idx_skills_flagged ON skills(is_flagged) WHERE is_flagged = TRUE;
    `)
	if err != nil {
		log.Printf("failed to ensure skills table: %v", err)
	}
}

func ensureProjectsTables() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS projects (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NULL,
            url TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE TABLE IF NOT EXISTS project_skills (
            project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            skill_id UUID NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
            PRIMARY KEY (project_id, skill_id)
        );
        CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id);
    `)
	if err != nil {
		log.Printf("failed to ensure projects tables: %v", err)
	}
}

// ensureSwapRequestsTable installs the partial unique index that makes
// "one PENDING request per unordered pair" hold under concurrent creates.
func ensureSwapRequestsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS swap_requests (
            id UUID PRIMARY KEY,
            sender_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            receiver_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','ACCEPTED','REJECTED','CANCELLED')),
            message TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_swap_requests_sender ON swap_requests(sender_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_swap_requests_receiver ON swap_requests(receiver_id, created_at);
        CREATE UNIQUE INDEX IF NOT EXISTS uq_swap_requests_pending_pair
            ON swap_requests (LEAST(sender_id, receiver_id), GREATEST(sender_id, receiver_id))
            WHERE status = 'PENDING';
    `)
	if err != nil {
		log.Printf("failed to ensure swap_requests table: %v", err)
	}
}

// ensureRatingsTable carries the hard uniqueness on (swap_request_id,
// rater_id): each participant rates a given swap at most once.
func ensureRatingsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS ratings (
            id UUID PRIMARY KEY,
            swap_request_id UUID NOT NULL REFERENCES swap_requests(id) ON DELETE CASCADE,
            rater_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            rated_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
            feedback TEXT NULL,
            is_public BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            UNIQUE (swap_request_id, rater_id)
        );
        CREATE INDEX IF NOT EXISTS idx_ratings_rated_user ON ratings(rated_user_id) WHERE is_public = TRUE;
    `)
	if err != nil {
		log.Printf("failed to ensure ratings table: %v", err)
	}
}

func ensureReportsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS reports (
            id UUID PRIMARY KEY,
            reporter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            reported_user_id UUID NULL REFERENCES users(id) ON DELETE CASCADE,
            reported_skill_id UUID NULL REFERENCES skills(id) ON DELETE CASCADE,
            type TEXT NOT NULL CHECK (type IN ('USER','SKILL')),
            reason TEXT NOT NULL,
            description TEXT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','REVIEWED','RESOLVED','DISMISSED')),
            resolution TEXT NULL,
            reviewed_at TIMESTAMP WITH TIME ZONE NULL,
            reviewed_by UUID NULL REFERENCES users(id) ON DELETE SET NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status);
    `)
	if err != nil {
		log.Printf("failed to ensure reports table: %v", err)
	}
}

func ensurePlatformMessagesTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS platform_messages (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            type TEXT NOT NULL CHECK (type IN ('ANNOUNCEMENT','UPDATE','WARNING','MAINTENANCE')),
            priority TEXT NOT NULL DEFAULT 'NORMAL' CHECK (priority IN ('LOW','NORMAL','HIGH','URGENT')),
            target_role TEXT NULL CHECK (target_role IN ('USER','ADMIN','SUPER_ADMIN')),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            expires_at TIMESTAMP WITH TIME ZONE NULL,
            created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("failed to ensure platform_messages table: %v", err)
	}
}

func ensureAdminLogsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS admin_logs (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            admin_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            action TEXT NOT NULL,
            target_type TEXT NULL,
            target_id TEXT NULL,
            details TEXT NULL,
            ip_address TEXT NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_admin_logs_admin ON admin_logs(admin_id, created_at);
    `)
	if err != nil {
		log.Printf("failed to ensure admin_logs table: %v", err)
	}
}

func ensureNotificationsTable() {
	_, err := Conn.Exec(context.Background(), `
        CREATE TABLE IF NOT EXISTS notifications (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            body TEXT,
            reference UUID NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            read_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE read_at IS NULL;
    `)
	if err != nil {
		log.Printf("failed to ensure notifications table: %v", err)
	}
}
