package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Connect establishes a connection to the database
func Connect(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &DB{db}, nil
}

// RunMigrations executes all SQL migration files in order
func (db *DB) RunMigrations(migrationsDir string) error {
	// Read all migration files
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Filter and sort SQL files
	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	// Execute each migration
	for _, filename := range sqlFiles {
		fmt.Printf("Running migration: %s\n", filename)

		filePath := filepath.Join(migrationsDir, filename)
		content, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	fmt.Println("All migrations completed successfully")
	return nil
}

// UpsertSensor inserts or updates a sensor
func (db *DB) UpsertSensor(s *Sensor) error {
	query := `
		INSERT INTO sensors (sensor_id, name, location)
		VALUES ($1, $2, $3)
		ON CONFLICT (sensor_id) DO UPDATE
		SET name = EXCLUDED.name,
		    location = EXCLUDED.location,
		    updated_at = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, s.SensorID, s.Name, s.Location)
	return err
}

// GetSensor retrieves a sensor by ID
func (db *DB) GetSensor(sensorID string) (*Sensor, error) {
	query := `
		SELECT sensor_id, name, location, created_at, updated_at
		FROM sensors
		WHERE sensor_id = $1
	`

	var s Sensor
	err := db.QueryRow(query, sensorID).Scan(
		&s.SensorID,
		&s.Name,
		&s.Location,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// InsertReading inserts a temperature reading
func (db *DB) InsertReading(r *Reading) error {
	query := `
		INSERT INTO readings (sensor_id, temperature, timestamp, received_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return db.QueryRow(
		query,
		r.SensorID,
		r.Temperature,
		r.Timestamp,
		r.ReceivedAt,
	).Scan(&r.ID)
}

// GetActiveThresholds retrieves all active threshold configs for a sensor
func (db *DB) GetActiveThresholds(sensorID string) ([]*ThresholdConfig, error) {
	query := `
		SELECT id, sensor_id, target_celsius, margin, direction,
		       is_active, created_at, updated_at
		FROM threshold_configs
		WHERE sensor_id = $1 AND is_active = true
		ORDER BY id
	`

	rows, err := db.Query(query, sensorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*ThresholdConfig
	for rows.Next() {
		var c ThresholdConfig
		if err := rows.Scan(
			&c.ID,
			&c.SensorID,
			&c.TargetCelsius,
			&c.Margin,
			&c.Direction,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		configs = append(configs, &c)
	}

	return configs, rows.Err()
}

// InsertAlertLog inserts a fired alert
func (db *DB) InsertAlertLog(a *AlertLog) error {
	query := `
		INSERT INTO alerts_log (
			alert_id, sensor_id, value_celsius, target_celsius,
			margin, direction, fired_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return db.QueryRow(
		query,
		a.AlertID,
		a.SensorID,
		a.ValueCelsius,
		a.TargetCelsius,
		a.Margin,
		a.Direction,
		a.FiredAt,
	).Scan(&a.ID)
}
