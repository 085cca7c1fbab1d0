package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/victorrosario/videocatalog-backend/api/controllers"
	"github.com/victorrosario/videocatalog-backend/api/middleware"
	castmember "github.com/victorrosario/videocatalog-backend/internal/castmembers"
	category "github.com/victorrosario/videocatalog-backend/internal/categories"
	gender "github.com/victorrosario/videocatalog-backend/internal/genders"
	video "github.com/victorrosario/videocatalog-backend/internal/videos"
	"github.com/victorrosario/videocatalog-backend/pkg/config"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	storageP controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	categoryService category.Service,
	genderService gender.Service,
	castMemberService castmember.Service,
	videoService video.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP, storageP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(categoryService, logg))
			r.Post("/", controllers.CategoryCreate(categoryService, logg))
			r.Get("/{id}", controllers.CategoryGet(categoryService, logg))
			r.Put("/{id}", controllers.CategoryUpdate(categoryService, logg))
			r.Delete("/{id}", controllers.CategoryDelete(categoryService, logg))
		})

		r.Route("/genders", func(r chi.Router) {
			r.Get("/", controllers.GenderList(genderService, logg))
			r.Post("/", controllers.GenderCreate(genderService, logg))
			r.Get("/{id}", controllers.GenderGet(genderService, logg))
			r.Put("/{id}", controllers.GenderUpdate(genderService, logg))
			r.Delete("/{id}", controllers.GenderDelete(genderService, logg))
		})

		r.Route("/cast_members", func(r chi.Router) {
			r.Get("/", controllers.CastMemberList(castMemberService, logg))
			r.Post("/", controllers.CastMemberCreate(castMemberService, logg))
			r.Get("/{id}", controllers.CastMemberGet(castMemberService, logg))
			r.Put("/{id}", controllers.CastMemberUpdate(castMemberService, logg))
			r.Delete("/{id}", controllers.CastMemberDelete(castMemberService, logg))
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", controllers.VideoList(videoService, logg))
			r.Post("/", controllers.VideoCreate(videoService, cfg.Media, logg))
			r.Get("/{id}", controllers.VideoGet(videoService, logg))
			r.Put("/{id}", controllers.VideoUpdate(videoService, cfg.Media, logg))
			r.Delete("/{id}", controllers.VideoDelete(videoService, logg))
		})
	})

	return r
}
