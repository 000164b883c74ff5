package http

import (
	"context"
	"net/http"
	"time"

	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/query"
	"github.com/trailhead-app/trailhead/internal/service"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

// ---- Shared test doubles ----

// authServiceMock implements service.AuthService with overridable functions.
type authServiceMock struct {
	signupFunc         func(ctx context.Context, req models.SignupRequest) (models.User, error)
	loginFunc          func(ctx context.Context, email, password string) (models.User, error)
	createTokenFunc    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFunc     func(ctx context.Context, tokenString string) (models.Token, error)
	forgotPasswordFunc func(ctx context.Context, email string) error
	resetPasswordFunc  func(ctx context.Context, token, password, passwordConfirm string) (models.User, error)
	updatePasswordFunc func(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error)
}

func (m *authServiceMock) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return m.signupFunc(ctx, req)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *authServiceMock) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFunc == nil {
		return models.Token{UserID: user.ID, IssuedAt: time.Now(), SignedString: "test-token"}, nil
	}
	return m.createTokenFunc(ctx, user)
}

func (m *authServiceMock) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFunc(ctx, tokenString)
}

func (m *authServiceMock) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotPasswordFunc(ctx, email)
}

func (m *authServiceMock) ResetPassword(ctx context.Context, token, password, passwordConfirm string) (models.User, error) {
	return m.resetPasswordFunc(ctx, token, password, passwordConfirm)
}

func (m *authServiceMock) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error) {
	return m.updatePasswordFunc(ctx, userID, currentPassword, newPassword, passwordConfirm)
}

// userRepoStub implements store.UserRepository; tests override only what
// they exercise.
type userRepoStub struct {
	findActiveUserByIDFunc func(ctx context.Context, id int64) (models.User, error)
	updateProfileFunc      func(ctx context.Context, id int64, name, email string) (models.User, error)
	deactivateFunc         func(ctx context.Context, id int64) error
}

func (m *userRepoStub) CreateUser(context.Context, models.User) (models.User, error) {
	return models.User{}, nil
}

func (m *userRepoStub) FindUserByEmail(context.Context, string) (models.User, error) {
	return models.User{}, store.ErrNoUserWasFound
}

func (m *userRepoStub) FindActiveUserByID(ctx context.Context, id int64) (models.User, error) {
	return m.findActiveUserByIDFunc(ctx, id)
}

func (m *userRepoStub) UpdateProfile(ctx context.Context, id int64, name, email string) (models.User, error) {
	return m.updateProfileFunc(ctx, id, name, email)
}

func (m *userRepoStub) UpdatePassword(context.Context, int64, string) (models.User, error) {
	return models.User{}, nil
}

func (m *userRepoStub) SetResetToken(context.Context, int64, string, time.Time) error {
	return nil
}

func (m *userRepoStub) FindUserByResetTokenDigest(context.Context, string) (models.User, error) {
	return models.User{}, store.ErrNoUserWasFound
}

func (m *userRepoStub) Deactivate(ctx context.Context, id int64) error {
	return m.deactivateFunc(ctx, id)
}

func (m *userRepoStub) PurgeExpiredResetTokens(context.Context) (int64, error) {
	return 0, nil
}

// resourceRepoMock implements store.ResourceRepository[T] with overridable
// functions.
type resourceRepoMock[T any] struct {
	schema         query.Schema
	insertFunc     func(ctx context.Context, doc T) (T, error)
	findByIDFunc   func(ctx context.Context, id int64) (T, error)
	updateByIDFunc func(ctx context.Context, id int64, doc T) (T, error)
	deleteByIDFunc func(ctx context.Context, id int64) error
	findAllFunc    func(ctx context.Context, spec query.Spec) ([]T, error)
	countFunc      func(ctx context.Context, spec query.Spec) (int64, error)
}

func (m *resourceRepoMock[T]) Schema() query.Schema { return m.schema }

func (m *resourceRepoMock[T]) Insert(ctx context.Context, doc T) (T, error) {
	return m.insertFunc(ctx, doc)
}

func (m *resourceRepoMock[T]) FindByID(ctx context.Context, id int64) (T, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *resourceRepoMock[T]) UpdateByID(ctx context.Context, id int64, doc T) (T, error) {
	return m.updateByIDFunc(ctx, id, doc)
}

func (m *resourceRepoMock[T]) DeleteByID(ctx context.Context, id int64) error {
	return m.deleteByIDFunc(ctx, id)
}

func (m *resourceRepoMock[T]) FindAll(ctx context.Context, spec query.Spec) ([]T, error) {
	return m.findAllFunc(ctx, spec)
}

func (m *resourceRepoMock[T]) Count(ctx context.Context, spec query.Spec) (int64, error) {
	return m.countFunc(ctx, spec)
}

// ---- Construction helpers ----

func testConfig(env string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Env:              env,
			TokenDuration:    time.Hour,
			DefaultPageLimit: 100,
			MaxPageLimit:     500,
		},
		Server: config.Server{
			HTTPAddress: "localhost:8080",
		},
	}
}

func newTestHandler(services *service.Services, storages *store.Storages, env string) *Handler {
	if services == nil {
		services = &service.Services{}
	}
	if storages == nil {
		storages = &store.Storages{}
	}

	return &Handler{
		services: services,
		storages: storages,
		cfg:      testConfig(env),
		logger:   logger.Nop(),
	}
}

// injectNopLogger puts a nop logger into the request context, matching what
// withTraceID does in production wiring.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// withCtxUser attaches an authenticated user the way protect does.
func withCtxUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
	return r.WithContext(ctx)
}
