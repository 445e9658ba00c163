package router

import (
	"database/sql"
	"net/http"

	blobmem "pupper-backend/internal/adapters/blob/memory"
	blobminio "pupper-backend/internal/adapters/blob/minio"
	"pupper-backend/internal/adapters/classify/labeldetect"
	mem "pupper-backend/internal/adapters/storage/memory"
	pg "pupper-backend/internal/adapters/storage/postgres"
	"pupper-backend/internal/config"
	"pupper-backend/internal/domain/dogs"
	"pupper-backend/internal/domain/images"
	"pupper-backend/internal/domain/shelters"
	"pupper-backend/internal/domain/users"
	"pupper-backend/internal/domain/votes"
	"pupper-backend/internal/middleware"
	"pupper-backend/internal/platform/httpclient"
	"pupper-backend/internal/platform/logger"
	"pupper-backend/internal/ports/blob"
	"pupper-backend/internal/ports/classify"

	_ "pupper-backend/docs" // swagger spec generada

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Log    logger.Logger

	// Opcional: si viene, usa Postgres. Si no, intenta abrir por DSN de
	// config, y sin DSN cae a in-memory.
	DB *sql.DB

	// Opcionales, para inyectar fakes en tests.
	Blob       blob.Store
	Classifier classify.Classifier
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.DevIdentity)

	if opts.Config.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(
			opts.Config.RateLimit.RequestsPerSecond,
			opts.Config.RateLimit.Burst,
		)
		r.Use(rl.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		dogRepo     dogs.Repository
		voteRepo    votes.Repository
		shelterRepo shelters.Repository
		userRepo    users.Repository
		imageRepo   images.Repository
	)

	// Si no te pasan DB explícita, intenta por config (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := opts.Config.Database.DSN; dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("failed to open postgres, falling back to in-memory", map[string]any{
					"error": err.Error(),
				})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		dogRepo = pg.NewDogsRepo(db)
		voteRepo = pg.NewVotesRepo(db)
		shelterRepo = pg.NewSheltersRepo(db)
		userRepo = pg.NewUsersRepo(db)
		imageRepo = pg.NewImagesRepo(db)
	} else {
		dogRepo = mem.NewDogRepository()
		voteRepo = mem.NewVoteRepository()
		shelterRepo = mem.NewShelterRepository()
		userRepo = mem.NewUserRepository()
		imageRepo = mem.NewImageRepository()
	}

	blobStore := opts.Blob
	if blobStore == nil {
		blobStore = newBlobStore(opts.Config.Blob, log)
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier = newClassifier(opts.Config.Classifier, log)
	}

	// Services por módulo
	dogsSvc := dogs.NewService(dogRepo, blobStore, log)
	votesSvc := votes.NewService(voteRepo, dogsSvc)
	sheltersSvc := shelters.NewService(shelterRepo)
	usersSvc := users.NewService(userRepo)
	imagesSvc := images.NewService(imageRepo, blobStore, classifier, dogsSvc, log)

	// Rutas por módulo
	dogs.RegisterRoutes(r, dogsSvc)
	votes.RegisterRoutes(r, votesSvc)
	shelters.RegisterRoutes(r, sheltersSvc)
	users.RegisterRoutes(r, usersSvc)
	images.RegisterRoutes(r, imagesSvc)

	return r
}

// newBlobStore elige MinIO si hay endpoint configurado; si no, el store
// en memoria (dev local sin infra).
func newBlobStore(cfg config.BlobConfig, log logger.Logger) blob.Store {
	if cfg.Endpoint == "" {
		return blobmem.NewStore()
	}

	store, err := blobminio.NewStore(blobminio.Config{
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Bucket:          cfg.Bucket,
		UseSSL:          cfg.UseSSL,
		PublicBaseURL:   cfg.PublicBaseURL,
	})
	if err != nil {
		log.Error("failed to init blob storage, falling back to in-memory", map[string]any{
			"error": err.Error(),
		})
		return blobmem.NewStore()
	}
	return store
}

// newClassifier: sin base URL no hay clasificación (nil = aceptar todo).
func newClassifier(cfg config.ClassifierConfig, log logger.Logger) classify.Classifier {
	if cfg.BaseURL == "" {
		return nil
	}

	client, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		log.Error("invalid classifier base url, classification disabled", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	return labeldetect.New(client, cfg.MinConfidence)
}
