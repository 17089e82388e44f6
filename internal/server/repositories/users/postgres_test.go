package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "location", "profile_photo", "skills_offered", "skills_wanted",
	"availability", "is_public", "rating", "total_ratings", "status", "created_at"}

var created = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func aliceRow() *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		"u-1", "Alice", "alice@example.com", "Berlin", "", []byte(`["Python","Go"]`), []byte(`["Guitar"]`),
		"weekends", true, 4.5, 2, "active", created)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,.*RETURNING\s+created_at`).
		WithArgs("u-1", "Alice", "alice@example.com", "Berlin", "", `["Python"]`, `[]`, "", true, "active").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	u := &models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", Location: "Berlin",
		SkillsOffered: []string{"Python"}, IsPublic: true, Status: models.UserStatusActive}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-2", Email: "ALICE@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: "u-2"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("u-1").
		WillReturnRows(aliceRow())

	got, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, []string{"Python", "Go"}, got.SkillsOffered)
	assert.Equal(t, []string{"Guitar"}, got.SkillsWanted)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 2, got.TotalRatings)
	assert.Equal(t, models.UserStatusActive, got.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id`).
		WithArgs("ghost").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "ghost"`})

	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSearch_PassesFiltersAndPatterns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+users.*jsonb_array_elements_text.*ILIKE\s+\$3.*location\s+ILIKE\s+\$5.*ORDER\s+BY\s+created_at`).
		WithArgs(true, "py", "%py%", "ber", "%ber%").
		WillReturnRows(aliceRow())

	got, err := repo.Search(context.Background(), models.UserFilter{Skill: "py", Location: "ber", PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice@example.com", got[0].Email)
}

func TestSearch_EmptyResultIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users`).
		WithArgs(false, "", "%%", "", "%%").
		WillReturnRows(sqlmock.NewRows(userCols))

	got, err := repo.Search(context.Background(), models.UserFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users`).WillReturnError(errors.New("db err"))

	_, err := repo.Search(context.Background(), models.UserFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestUpdate_ReturnsRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$2.*WHERE\s+id\s*=\s*\$1\s+RETURNING`).
		WithArgs("u-1", "Alice", "Berlin", "", `["Python","Go"]`, `["Guitar"]`, "weekends", true).
		WillReturnRows(aliceRow())

	got, err := repo.Update(context.Background(), &models.User{
		ID: "u-1", Name: "Alice", Location: "Berlin",
		SkillsOffered: []string{"Python", "Go"}, SkillsWanted: []string{"Guitar"},
		Availability: "weekends", IsPublic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.User{ID: "ghost"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_MalformedIDIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.Update(context.Background(), &models.User{ID: "ghost"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLock(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

	require.NoError(t, repo.Lock(context.Background(), "u-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FOR\s+UPDATE`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	require.ErrorIs(t, repo.Lock(context.Background(), "ghost"), common.ErrorNotFound)

	mock.ExpectQuery(`FOR\s+UPDATE`).WithArgs("x").WillReturnError(errors.New("conn reset"))
	err := repo.Lock(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestSetRating(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+rating\s*=\s*\$2,\s*total_ratings\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1", 4.3, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRating(context.Background(), "u-1", models.RatingSummary{Average: 4.3, Count: 3}))
}

func TestSetRating_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+rating`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetRating(context.Background(), "ghost", models.RatingSummary{})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSearchSkills(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+DISTINCT\s+s\.skill.*ORDER\s+BY\s+s\.skill`).
		WithArgs("%gui%").
		WillReturnRows(sqlmock.NewRows([]string{"skill"}).AddRow("Guitar").AddRow("Guitar repair"))

	got, err := repo.SearchSkills(context.Background(), "gui")
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar", "Guitar repair"}, got)
}
