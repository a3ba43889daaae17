package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

// roomColumns joins the owning building so listings carry the building name.
const roomColumns = `r.id, r.building_id, b.name AS building_name, r.room_number, r.room_type, r.capacity, r.floor, r.description, r.is_available, r.has_projector, r.created_at, r.updated_at`

// RoomRepository provides persistence for rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns all rooms with pagination.
func (r *RoomRepository) List(ctx context.Context, page, pageSize int) ([]models.Room, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("SELECT %s FROM rooms r JOIN buildings b ON b.id = r.building_id ORDER BY b.name ASC, r.room_number ASC LIMIT %d OFFSET %d", roomColumns, pageSize, offset)
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM rooms"); err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	return rooms, total, nil
}

// FindByID loads a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM rooms r JOIN buildings b ON b.id = r.building_id WHERE r.id = $1", roomColumns)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// FindCandidates returns available rooms matching the static filter. Filter
// combinations are mutually exclusive; the first matching combination wins,
// so supplying e.g. both a minimum capacity and a room type honors only the
// room type. Results keep the natural building/room-number order.
func (r *RoomRepository) FindCandidates(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	base := fmt.Sprintf("SELECT %s FROM rooms r JOIN buildings b ON b.id = r.building_id WHERE r.is_available = TRUE", roomColumns)
	order := " ORDER BY b.name ASC, r.room_number ASC"

	var (
		query string
		args  []interface{}
	)
	switch {
	case filter.BuildingID != "" && filter.RoomType != "":
		query = base + " AND r.building_id = $1 AND r.room_type = $2" + order
		args = []interface{}{filter.BuildingID, filter.RoomType}
	case filter.BuildingID != "":
		query = base + " AND r.building_id = $1" + order
		args = []interface{}{filter.BuildingID}
	case filter.RoomType != "":
		query = base + " AND r.room_type = $1" + order
		args = []interface{}{filter.RoomType}
	case filter.MinCapacity > 0:
		query = base + " AND r.capacity >= $1" + order
		args = []interface{}{filter.MinCapacity}
	default:
		query = base + order
	}

	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("find candidate rooms: %w", err)
	}
	return rooms, nil
}

// Create stores a new room record.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	const query = `INSERT INTO rooms (id, building_id, room_number, room_type, capacity, floor, description, is_available, has_projector, created_at, updated_at) VALUES (:id, :building_id, :room_number, :room_type, :capacity, :floor, :description, :is_available, :has_projector, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update modifies a room record.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	const query = `UPDATE rooms SET building_id = :building_id, room_number = :room_number, room_type = :room_type, capacity = :capacity, floor = :floor, description = :description, is_available = :is_available, has_projector = :has_projector, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete removes a room by id.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}
