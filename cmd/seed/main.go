package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"seminar/internal/auth"
	"seminar/internal/cache"
	"seminar/internal/config"
	"seminar/internal/db"
	"seminar/internal/errors"
	"seminar/internal/logger"
	"seminar/internal/repository"
	"seminar/internal/service"
)

const seedPassword = "password"

func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	instructors := flag.Int("instructors", 10, "number of instructors, each running one seminar")
	participants := flag.Int("participants", 20, "number of participants to enroll")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: true})
	lg.Info().Msg("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQL.DSN, db.Options{Logger: lg})
	if err != nil {
		lg.Fatal().Err(err).Msg("connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		lg.Fatal().Err(err).Msg("run migrations")
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)
	users := newSeeder(store, cacheClient, auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL), lg)

	ctx := context.Background()
	seminarIDs, err := users.seedInstructors(ctx, *instructors)
	if err != nil {
		lg.Fatal().Err(err).Msg("seed instructors")
	}
	enrolled, err := users.seedParticipants(ctx, *participants, seminarIDs)
	if err != nil {
		lg.Fatal().Err(err).Msg("seed participants")
	}

	lg.Info().
		Int("seminars", len(seminarIDs)).
		Int("enrolled", enrolled).
		Msg("seed completed")
}

type seeder struct {
	store    repository.Store
	auth     service.AuthService
	seminars service.SeminarService
	log      zerolog.Logger
}

func newSeeder(store repository.Store, c *cache.Client, jwt *auth.JWTService, lg zerolog.Logger) *seeder {
	return &seeder{
		store: store,
		// sign-up never consults the revocation store
		auth:     service.NewAuthService(store.Users(), jwt, nil),
		seminars: service.NewSeminarService(store, c, service.WithSeminarLogger(lg)),
		log:      lg,
	}
}

// ensureUser signs the user up, or loads it if the email is already taken.
func (s *seeder) ensureUser(ctx context.Context, in service.SignUpInput) (uint, error) {
	_, user, err := s.auth.SignUp(ctx, in)
	if err == nil {
		return user.ID, nil
	}
	if errors.StatusOf(err) != http.StatusConflict {
		return 0, err
	}
	existing, err := s.store.Users().FindByEmail(ctx, in.Email)
	if err != nil {
		return 0, fmt.Errorf("load existing user %s: %w", in.Email, err)
	}
	return existing.ID, nil
}

func (s *seeder) seedInstructors(ctx context.Context, n int) ([]uint, error) {
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		year := i % 10
		uid, err := s.ensureUser(ctx, service.SignUpInput{
			Email:    fmt.Sprintf("ins@tructor#%d.com", i),
			Username: fmt.Sprintf("instructor%d", i),
			Password: seedPassword,
			Role:     "instructor",
			Company:  "wafflestudio",
			Year:     &year,
		})
		if err != nil {
			return nil, err
		}

		capacity, count := 2, 1
		detail, err := s.seminars.CreateSeminar(ctx, uid, service.CreateSeminarInput{
			Name:     fmt.Sprintf("세미나#%d", i),
			Capacity: &capacity,
			Count:    &count,
			Time:     "09:00",
		})
		if err != nil {
			if errors.StatusOf(err) == http.StatusBadRequest {
				s.log.Debug().Uint("user_id", uid).Msg("instructor already runs a seminar")
				continue
			}
			return nil, err
		}
		ids = append(ids, detail.ID)
	}
	return ids, nil
}

func (s *seeder) seedParticipants(ctx context.Context, n int, seminarIDs []uint) (int, error) {
	if len(seminarIDs) == 0 {
		return 0, nil
	}
	enrolled := 0
	for i := 0; i < n; i++ {
		uid, err := s.ensureUser(ctx, service.SignUpInput{
			Email:      fmt.Sprintf("part@icipant#%d.com", i),
			Username:   fmt.Sprintf("participant%d", i),
			Password:   seedPassword,
			Role:       "participant",
			University: "SNU",
		})
		if err != nil {
			return enrolled, err
		}

		seminarID := seminarIDs[i%len(seminarIDs)]
		if _, err := s.seminars.ApplySeminar(ctx, uid, seminarID, "participant"); err != nil {
			if _, ok := errors.AsSeminarError(err); ok {
				s.log.Debug().Err(err).Uint("user_id", uid).Uint("seminar_id", seminarID).Msg("skip enrollment")
				continue
			}
			return enrolled, err
		}
		enrolled++
	}
	return enrolled, nil
}
