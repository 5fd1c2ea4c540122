package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/geom"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that exposes its tables through
// wrapper types implementing the driven store interfaces.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.wayfinder/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wayfinder", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL lets the TUI read history while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryStore returns a RouteHistoryStore backed by this store.
func (s *Store) HistoryStore() driven.RouteHistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_route_history.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== History Store ====================

// historyStore implements driven.RouteHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.RouteHistoryStore = (*historyStore)(nil)

const historyColumns = `id, origin_lat, origin_lng, origin_address,
	destination_lat, destination_lng, destination_address,
	profile, distance_meters, duration_seconds, summary, geometry, created_at`

// Save stores or updates a route.
func (s *historyStore) Save(ctx context.Context, route domain.SavedRoute) error {
	if route.ID == "" {
		return domain.ErrInvalidInput
	}

	geometry, err := encodeGeometry(route.Geometry)
	if err != nil {
		return fmt.Errorf("encoding geometry: %w", err)
	}

	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO route_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			origin_lat = excluded.origin_lat,
			origin_lng = excluded.origin_lng,
			origin_address = excluded.origin_address,
			destination_lat = excluded.destination_lat,
			destination_lng = excluded.destination_lng,
			destination_address = excluded.destination_address,
			profile = excluded.profile,
			distance_meters = excluded.distance_meters,
			duration_seconds = excluded.duration_seconds,
			summary = excluded.summary,
			geometry = excluded.geometry
	`, route.ID,
		route.Origin.Coordinate.Lat, route.Origin.Coordinate.Lng, route.Origin.Address,
		route.Destination.Coordinate.Lat, route.Destination.Coordinate.Lng, route.Destination.Address,
		string(route.Profile), route.DistanceMeters, route.DurationSeconds, route.Summary,
		geometry, route.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving route: %w", err)
	}
	return nil
}

// Get retrieves a route by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.SavedRoute, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+historyColumns+" FROM route_history WHERE id = ?", id)

	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning route: %w", err)
	}
	return route, nil
}

// List returns up to limit routes, most recent first. Zero means no limit.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.SavedRoute, error) {
	query := "SELECT " + historyColumns + " FROM route_history ORDER BY created_at DESC, id ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying routes: %w", err)
	}
	defer rows.Close()

	var routes []domain.SavedRoute //nolint:prealloc // size unknown from query
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning route: %w", err)
		}
		routes = append(routes, *route)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating routes: %w", err)
	}

	return routes, nil
}

// Delete removes a route.
func (s *historyStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM route_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*domain.SavedRoute, error) {
	var route domain.SavedRoute
	var profile string
	var geometry []byte
	var createdAt sql.NullTime

	if err := row.Scan(&route.ID,
		&route.Origin.Coordinate.Lat, &route.Origin.Coordinate.Lng, &route.Origin.Address,
		&route.Destination.Coordinate.Lat, &route.Destination.Coordinate.Lng, &route.Destination.Address,
		&profile, &route.DistanceMeters, &route.DurationSeconds, &route.Summary,
		&geometry, &createdAt); err != nil {
		return nil, err
	}

	route.Profile = domain.TravelProfile(profile)
	if createdAt.Valid {
		route.CreatedAt = createdAt.Time
	}

	g, err := decodeGeometry(geometry)
	if err != nil {
		return nil, fmt.Errorf("decoding geometry: %w", err)
	}
	route.Geometry = g

	return &route, nil
}

// encodeGeometry stores geometry as WKB. Empty geometry is stored as NULL.
func encodeGeometry(g domain.RouteGeometry) ([]byte, error) {
	if len(g) == 0 {
		return nil, nil
	}
	return wkb.Marshal(geom.LineString(g))
}

func decodeGeometry(data []byte) (domain.RouteGeometry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	ls, ok := g.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry type %s", g.GeoJSONType())
	}
	return geom.RouteGeometry(ls), nil
}
