// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values. The struct field tags (the backtick strings like `gorm:"..."`) tell GORM
// how to handle each field: its column type, constraints, defaults, and relationships.
//
// The data model represents a multi-tenant golf tournament platform:
//   - A Tournament is the tenant container; organizers configure it, players join it
//   - Tournaments contain Rounds played at Courses
//   - Each Course has Tees (rating/slope/par) and per-tee Hole details
//   - RoundPlayers carry a player's handicap profile for a round
//   - Scores record gross strokes per player per hole
//
// Derived values — a player's course handicap, Stableford points, leaderboard rows —
// are NEVER authoritative in the database. They are recomputed on demand by the
// internal/scoring package from the raw inputs stored here; any persisted copy
// (like RoundPlayer.CourseHandicap) is a display cache only.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string
// type plus constants. This gives us type safety while keeping the stored values
// human-readable in the database.

// UserRole represents a user's global permission level across the entire platform.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"     // Full access: manage users, tournaments, everything
	UserRoleOrganizer UserRole = "organizer" // Can create and manage tournaments
	UserRolePlayer    UserRole = "player"    // Regular player: can join tournaments and record scores
)

// TournamentStatus tracks the lifecycle of a tournament.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"  // Scheduled but hasn't started
	TournamentStatusActive    TournamentStatus = "active"    // Currently in progress
	TournamentStatusCompleted TournamentStatus = "completed" // Finished
	TournamentStatusCancelled TournamentStatus = "cancelled" // Cancelled before completion
)

// TournamentPlayerStatus tracks a player's participation state in a tournament.
type TournamentPlayerStatus string

const (
	TournamentPlayerStatusInvited    TournamentPlayerStatus = "invited"    // Invited but hasn't confirmed
	TournamentPlayerStatusRegistered TournamentPlayerStatus = "registered" // Confirmed participation
	TournamentPlayerStatusWithdrawn  TournamentPlayerStatus = "withdrawn"  // Withdrew before or during the tournament
)

// RoundStatus tracks the lifecycle of a single round within a tournament.
type RoundStatus string

const (
	RoundStatusScheduled RoundStatus = "scheduled" // On the calendar but not started
	RoundStatusActive    RoundStatus = "active"    // Currently being played
	RoundStatusCompleted RoundStatus = "completed" // Finished; scores are final
)

// TeeGender indicates which gender a set of tees is rated for.
// Courses rate tees separately because different tee boxes play at different distances.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex" // No gender designation — open to all
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name
// (snake_cased and pluralized) as the table name by default.

// User represents a registered person in the system. Users are created
// automatically the first time an authenticated user hits the API; the
// ExternalID links our internal record to the identity provider.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID  *string   `gorm:"uniqueIndex:idx_users_external_id"` // Identity provider's user ID; pointer = nullable for legacy rows
	DisplayName string    `gorm:"not null"`                          // Name shown in the app; populated from the JWT "name" claim
	Email       string    `gorm:"uniqueIndex;not null"`              // Unique email; populated from the JWT "email" claim
	Role        UserRole  `gorm:"type:user_role;not null;default:'player'"`
	CreatedAt   time.Time // GORM automatically sets this on create
	UpdatedAt   time.Time // GORM automatically updates this on every save
}

// Tournament is the tenant container: every round, registration, and score
// hangs off exactly one tournament. Who belongs is tracked via TournamentPlayer;
// the creator is automatically registered as an organizer of the tournament.
type Tournament struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string           `gorm:"not null"`
	Description *string          // Optional long-form description; pointer = nullable
	Status      TournamentStatus `gorm:"type:tournament_status;not null;default:'upcoming'"`
	StartDate   *time.Time       // Optional; some tournaments don't have a fixed date yet
	EndDate     *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"` // Foreign key: which user created this tournament
	Creator     User      `gorm:"foreignKey:CreatedBy"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Players     []TournamentPlayer `gorm:"foreignKey:TournamentID"` // Registered players/members
	Rounds      []Round            `gorm:"foreignKey:TournamentID"` // Rounds that make up this tournament
}

// TournamentPlayer links a User to a Tournament — the registration list.
// IsOrganizer controls who can edit this tournament, invite members, and
// schedule rounds (separate from the global UserRole, which only gates
// creating tournaments at all). The unique index ensures a user registers
// only once per tournament.
type TournamentPlayer struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"`
	Tournament   Tournament             `gorm:"foreignKey:TournamentID"`
	UserID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"`
	User         User                   `gorm:"foreignKey:UserID"`
	IsOrganizer  bool                   `gorm:"not null;default:false"`
	Status       TournamentPlayerStatus `gorm:"type:tournament_player_status;not null;default:'registered'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Round represents a single day/round of play within a Tournament.
type Round struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID  uuid.UUID   `gorm:"type:uuid;not null"`
	Tournament    Tournament  `gorm:"foreignKey:TournamentID"`
	CourseID      uuid.UUID   `gorm:"type:uuid;not null"`
	Course        Course      `gorm:"foreignKey:CourseID"`
	DefaultTeeID  uuid.UUID   `gorm:"type:uuid;not null"` // The tee set most players use; individuals can override in RoundPlayer
	DefaultTee    Tee         `gorm:"foreignKey:DefaultTeeID"`
	RoundNumber   int         `gorm:"not null;default:1"` // 1 for first round, 2 for second, etc.
	ScheduledDate time.Time   `gorm:"not null"`
	Status        RoundStatus `gorm:"type:round_status;not null;default:'scheduled'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoundPlayer is a player's handicap profile for one round: their handicap
// index at the time of play and their chosen tee. Both are nullable — a
// player without them simply has no computable course handicap yet, which is
// a different state from a computed handicap of 0.
//
// CourseHandicap is a derived display cache: it is recomputed by
// internal/scoring whenever HandicapIndex or the tee changes, and the
// leaderboard never reads it back as truth.
type RoundPlayer struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_round_user"`
	Round          Round      `gorm:"foreignKey:RoundID"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_round_user"`
	User           User       `gorm:"foreignKey:UserID"`
	TeeID          *uuid.UUID `gorm:"type:uuid"` // Optional tee override; if nil, the round's DefaultTee is used
	Tee            *Tee       `gorm:"foreignKey:TeeID"`
	HandicapIndex  *float64   `gorm:"type:decimal(4,1)"` // WHS handicap index at time of round (e.g. 14.2); nullable until entered
	CourseHandicap *int       // Derived cache — see the type comment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Score records the strokes a player took on a single hole during a round.
// One row per (round player, hole); re-entering a score overwrites the row,
// clearing it deletes the row. Only gross strokes are stored — net scores and
// Stableford points are computed on read by internal/scoring.
type Score struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_hole"`
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	HoleNumber    int         `gorm:"not null;uniqueIndex:idx_round_player_hole"` // 1–18
	GrossScore    int         `gorm:"not null"`                                   // Actual strokes taken
	EnteredBy     uuid.UUID   `gorm:"type:uuid;not null"`                         // Which user entered this score
	Enterer       User        `gorm:"foreignKey:EnteredBy"`
	EnteredAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

// Course represents a golf course where rounds are played.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	HoleCount int       `gorm:"not null;default:18"` // Most courses have 18 holes; some have 9
	CreatedAt time.Time
	UpdatedAt time.Time
	Tees      []Tee `gorm:"foreignKey:CourseID"` // One-to-many: a course has many sets of tees
}

// Tee represents one set of tee boxes on a course (e.g. "Blue", "White", "Red").
// Each tee set has its own course rating, slope, and par — exactly the three
// numbers the handicap formula needs.
type Tee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Name         string    `gorm:"not null"` // e.g. "Blue", "White", "Red"
	Gender       TeeGender `gorm:"type:tee_gender;not null;default:'unisex'"`
	Yardage      *int      // Total distance from these tees; optional
	CourseRating float64   `gorm:"type:decimal(4,1);not null"` // USGA course rating (e.g. 71.2) — expected score for a scratch golfer
	SlopeRating  int       `gorm:"not null"`                   // USGA slope rating (55–155) — difficulty for bogey golfers relative to scratch
	Par          int       `gorm:"not null"`                   // Par for the full set of holes from these tees
	Holes        []Hole    `gorm:"foreignKey:TeeID"`           // Per-hole details for this tee set
}

// Hole stores per-hole details for a specific set of tees.
// Par and StrokeIndex can vary between tee sets on the same course.
// Within one tee set the stroke indexes must form a permutation of 1..18 —
// the scoring engine refuses to allocate strokes against data that breaks this.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeeID       uuid.UUID `gorm:"type:uuid;not null"`
	Tee         Tee       `gorm:"foreignKey:TeeID"`
	HoleNumber  int       `gorm:"not null"` // 1–18 (or 1–9 for a 9-hole course)
	Par         int       `gorm:"not null"` // 3, 4, or 5
	StrokeIndex int       `gorm:"not null"` // Handicap allocation rank: 1 = hardest, 18 = easiest
	Yardage     *int      // Distance in yards from this tee box; optional
}
