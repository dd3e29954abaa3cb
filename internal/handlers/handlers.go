package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fivec_analysis/internal/config"
	"fivec_analysis/internal/config/connections/mongo"
	"fivec_analysis/internal/config/connections/postgres"
	"fivec_analysis/internal/config/connections/s3"
	"fivec_analysis/internal/repository/database"
)

type Handlers struct {
	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3
	HTTP     *http.Client

	Scores *database.ScoresRepo

	DefaultScenario string
	Parallelism     int
	DataDir         string

	Logger *log.Logger
}

func New(cfg *config.Config) *Handlers {
	return &Handlers{
		Postgres: cfg.Postgres,
		Mongo:    cfg.Mongo,
		S3:       cfg.S3,
		HTTP:     &http.Client{},

		Scores: database.NewScoresRepo(cfg.Postgres, ""),

		DefaultScenario: cfg.DefaultScenario,
		Parallelism:     cfg.Parallelism,
		DataDir:         cfg.DataDir,

		Logger: log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
