package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/paging"
)

type captureRepo struct {
	inserted *User
	lastF    UserFilter
}

func (r *captureRepo) Insert(ctx context.Context, u *User) error { r.inserted = u; return nil }
func (r *captureRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return nil, apperr.ErrNotFound("user not found")
}
func (r *captureRepo) List(ctx context.Context, f UserFilter, w paging.Window) ([]User, int64, error) {
	r.lastF = f
	return nil, 0, nil
}

func newSvc(repo Repository) *Service {
	s := NewService(repo)
	s.cost = bcrypt.MinCost
	return s
}

func TestCreateUser_NormalizesAndHashes(t *testing.T) {
	repo := &captureRepo{}
	svc := newSvc(repo)

	// "e" + 結合アクセント → NFC で "é"
	res, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "  Rene\u0301 ", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ren\u00e9", res.Username)
	assert.Equal(t, Reader, res.RoleType)
	assert.Equal(t, NotModerated, res.ModerationState)
	assert.Equal(t, Active, res.UserState)

	require.NotNil(t, repo.inserted)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.inserted.PasswordHash), []byte("correct horse")))
	assert.Len(t, repo.inserted.ID, 26)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := newSvc(&captureRepo{})
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Password: "longenough"})
	assert.True(t, apperr.Is(err, apperr.CodeMissingParameter))

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "a", Password: "short"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "a", Password: "longenough", RoleType: "admin"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	svc := newSvc(NewStore(db.Wrap(conn)))
	_, err = svc.CreateUser(context.Background(), CreateUserRequest{Username: "taro", Password: "longenough"})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestParseEnumsAreCaseSensitive(t *testing.T) {
	_, ok := ParseRoleType("LIBRARIAN")
	assert.True(t, ok)
	_, ok = ParseRoleType("librarian")
	assert.False(t, ok)
	_, ok = ParseModerationState("BLOCKED")
	assert.True(t, ok)
	_, ok = ParseUserState("Suspended")
	assert.False(t, ok)
}

func TestPredicate_NoFiltersMatchesAll(t *testing.T) {
	q, args, err := Predicate(UserFilter{}).Apply(dialect.From("users")).Prepared(true).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)

	// 空文字の部分一致も条件なし
	empty := ""
	q, _, err = Predicate(UserFilter{Username: &empty}).Apply(dialect.From("users")).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, q, "WHERE")
}

func TestPredicate_Conjunction(t *testing.T) {
	st := Blocked
	role := Librarian
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	name := "Tar"

	q, args, err := Predicate(UserFilter{
		Username:        &name,
		ModerationState: &st,
		RoleType:        &role,
		CreatedFrom:     &from,
	}).Apply(dialect.From("users")).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, q, "LOWER(`username`) LIKE ?")
	assert.Contains(t, q, "`moderation_state` = ?")
	assert.Contains(t, q, "`role_type` = ?")
	assert.Contains(t, q, "`created_at` >= ?")
	assert.NotContains(t, q, "`user_state`")
	assert.NotContains(t, q, " OR ")
	assert.Contains(t, args, "%tar%")
	assert.Contains(t, args, "BLOCKED")
	assert.Contains(t, args, "LIBRARIAN")
}

func TestListUsers_NormalizesNeedle(t *testing.T) {
	repo := &captureRepo{}
	svc := newSvc(repo)
	needle := " Rene\u0301"
	page, err := svc.ListUsers(context.Background(), ListQuery{Filter: UserFilter{Username: &needle}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	require.NotNil(t, repo.lastF.Username)
	assert.Equal(t, "Ren\u00e9", *repo.lastF.Username)
}

func TestHandler_ListRejectsUnknownEnum(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	r := gin.New()
	RegisterRoutes(r, newSvc(&captureRepo{}), logger)

	for _, q := range []string{"moderationState=blocked", "userState=GONE", "roleType=ROOT", "startDate=yesterday"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?roleType=READER&username=ta", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}
