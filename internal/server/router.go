package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "library-backend/internal/docs"
	"library-backend/internal/library/bookitems"
	"library-backend/internal/library/books"
	"library-backend/internal/library/genres"
	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/auth"
	"library-backend/internal/platform/correlation"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/logging"
	"library-backend/internal/platform/metrics"
	"library-backend/internal/users"
)

const APIPrefix = "/api/v1"

// 書き込み系（登録・削除）に必要なロール
var writerRoles = []string{string(users.Librarian), string(users.Admin)}

// NewRouter wires every module onto one engine.
func NewRouter(cfg *db.Config, conn *sqlx.DB, log logrus.FieldLogger) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// correlation は最初に。以降のログ・エラー応答すべてに cid が乗る
	// recovery は最内側。panic も通常の 500 としてログ・メトリクスに残る
	r.Use(correlation.Middleware(), logging.RequestLogger(log), metrics.Middleware(), recovery(log))
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", correlation.HeaderName},
			ExposeHeaders:    []string{"Content-Length", correlation.HeaderName},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(APIPrefix)

	var (
		authed  []gin.HandlerFunc
		writers []gin.HandlerFunc
	)
	if cfg.Auth.Enabled {
		secret := []byte(cfg.Auth.Secret)
		auth.RegisterRoutes(api, auth.NewService(auth.NewStore(conn), secret, cfg.Auth.TokenTTL), log)
		authed = []gin.HandlerFunc{auth.RequireAuth(secret, log)}
		writers = []gin.HandlerFunc{auth.RequireRole(log, writerRoles...)}
	}

	protected := api.Group("", authed...)
	genres.RegisterRoutes(protected, genres.NewService(genres.NewStore(conn)), log, writers...)
	books.RegisterRoutes(protected, books.NewService(books.NewStore(conn)), log, writers...)
	users.RegisterRoutes(protected, users.NewService(users.NewStore(conn)), log, writers...)
	bookitems.RegisterRoutes(protected,
		bookitems.NewService(bookitems.NewStore(conn), log, cfg.Lending.LoanDays), log, writers...)

	return r
}

// recovery turns a panic into the standard INTERNAL_ERROR payload.
func recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		logging.FromContext(c.Request.Context(), log).
			WithField("stack", string(debug.Stack())).
			Debug("panic recovered")
		apperr.Respond(c, log, fmt.Errorf("panic: %v", rec))
	})
}
