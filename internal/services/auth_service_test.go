package services

import (
	"context"
	"testing"
	"time"

	"transitbook/internal/auth"
	"transitbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func userRows(hash string, role domain.Role) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
		AddRow(int64(1), "ops", hash, string(role), time.Now())
}

func TestLoginIssuesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`FROM users\s+WHERE username = \?`).WithArgs("ops").
		WillReturnRows(userRows(string(hash), domain.RoleOperator))

	res, err := AuthService{DB: db, Secret: testSecret}.Login(context.Background(), "ops", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ops", res.User.Username)

	claims, err := auth.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, domain.RoleOperator, claims.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`FROM users\s+WHERE username = \?`).WithArgs("ops").
		WillReturnRows(userRows(string(hash), domain.RoleOperator))

	_, err = AuthService{DB: db, Secret: testSecret}.Login(context.Background(), "ops", "guess")
	assert.True(t, domain.IsUnauthorized(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO users`).WithArgs("root", sqlmock.AnyArg(), "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := AuthService{DB: db}.EnsureBootstrapAdmin(context.Background(), "root", "long-enough")
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	created, err = AuthService{DB: db}.EnsureBootstrapAdmin(context.Background(), "root", "long-enough")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = AuthService{DB: db}.EnsureBootstrapAdmin(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidates(t *testing.T) {
	_, err := AuthService{}.CreateUser(context.Background(), "x", "short", domain.RoleAdmin)
	assert.True(t, domain.IsValidation(err))

	_, err = AuthService{}.CreateUser(context.Background(), "x", "long-enough", domain.Role("driver"))
	assert.True(t, domain.IsValidation(err))
}
