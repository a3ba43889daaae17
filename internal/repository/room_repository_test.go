package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "postgres"), mock, func() { db.Close() }
}

func roomRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "building_id", "building_name", "room_number", "room_type", "capacity", "floor", "description", "is_available", "has_projector", "created_at", "updated_at"}).
		AddRow("r1", "b1", "Science", "101", "CLASSROOM", 40, 1, "", true, true, time.Now(), time.Now())
}

func TestRoomRepositoryFindCandidatesBuildingAndType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE AND r.building_id = $1 AND r.room_type = $2 ORDER BY b.name ASC, r.room_number ASC")).
		WithArgs("b1", "CLASSROOM").
		WillReturnRows(roomRows())

	rooms, err := repo.FindCandidates(context.Background(), models.RoomFilter{BuildingID: "b1", RoomType: models.RoomTypeClassroom})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, "Science", rooms[0].BuildingName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindCandidatesBuildingOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE AND r.building_id = $1 ORDER BY")).
		WithArgs("b1").
		WillReturnRows(roomRows())

	_, err := repo.FindCandidates(context.Background(), models.RoomFilter{BuildingID: "b1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindCandidatesTypeOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE AND r.room_type = $1 ORDER BY")).
		WithArgs("LABORATORY").
		WillReturnRows(roomRows())

	_, err := repo.FindCandidates(context.Background(), models.RoomFilter{RoomType: models.RoomTypeLaboratory})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A room type combined with a minimum capacity honors only the room type.
func TestRoomRepositoryFindCandidatesTypeBeatsCapacity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE AND r.room_type = $1 ORDER BY")).
		WithArgs("AUDITORIUM").
		WillReturnRows(roomRows())

	_, err := repo.FindCandidates(context.Background(), models.RoomFilter{RoomType: models.RoomTypeAuditorium, MinCapacity: 100})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindCandidatesMinCapacity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE AND r.capacity >= $1 ORDER BY")).
		WithArgs(50).
		WillReturnRows(roomRows())

	_, err := repo.FindCandidates(context.Background(), models.RoomFilter{MinCapacity: 50})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindCandidatesNoFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.is_available = TRUE ORDER BY b.name ASC, r.room_number ASC")).
		WillReturnRows(roomRows())

	_, err := repo.FindCandidates(context.Background(), models.RoomFilter{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := &models.Room{BuildingID: "b1", RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}
	require.NoError(t, repo.Create(context.Background(), room))
	require.NotEmpty(t, room.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
