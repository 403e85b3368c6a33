package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/inboxzero/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory SQLite database with the schema migrated
func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database and its pragmas shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Enable foreign keys for SQLite (required for cascade delete)
	db.Exec("PRAGMA foreign_keys = ON")

	err = db.AutoMigrate(&models.User{}, &models.Email{})
	require.NoError(t, err)
	return db
}

// UserRepositoryTestSuite is the test suite for UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo UserRepository
}

// SetupSuite runs once before all tests
func (s *UserRepositoryTestSuite) SetupSuite() {
	s.db = openTestDB(s.T())
	s.repo = NewUserRepository(s.db)
}

// TearDownSuite runs once after all tests
func (s *UserRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test
func (s *UserRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM emails")
	s.db.Exec("DELETE FROM users")
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	user := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}

	err := s.repo.Create(ctx, user)

	require.NoError(s.T(), err)
	assert.NotZero(s.T(), user.ID)
	assert.False(s.T(), user.CreatedAt.IsZero())
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()
	require.NoError(s.T(), s.repo.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"}))

	err := s.repo.Create(ctx, &models.User{Name: "Other", Email: "ada@example.com", PasswordHash: "h"})

	assert.ErrorIs(s.T(), err, ErrDuplicateEntry)
}

func (s *UserRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	user := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(s.T(), s.repo.Create(ctx, user))

	found, err := s.repo.GetByID(ctx, user.ID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Ada", found.Name)
	assert.Equal(s.T(), "hash", found.PasswordHash)
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	found, err := s.repo.GetByID(context.Background(), 9999)

	assert.Nil(s.T(), found)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_Success() {
	ctx := context.Background()
	user := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	require.NoError(s.T(), s.repo.Create(ctx, user))

	found, err := s.repo.GetByEmail(ctx, "ada@example.com")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, found.ID)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_NotFound() {
	found, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.Nil(s.T(), found)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}
