package routes

import (
	config "github.com/proffinder/backend/configs"
	"github.com/proffinder/backend/database"
	"github.com/proffinder/backend/utils"
	"gorm.io/gorm"
)

// Deps carries the shared dependencies every route group wires into its
// handlers and middleware.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *utils.TokenService
	Users  *database.UserStore
}

func NewDeps(db *gorm.DB, cfg *config.Config) *Deps {
	return &Deps{
		DB:     db,
		Config: cfg,
		Tokens: utils.NewTokenService(cfg.JWTSecret),
		Users:  &database.UserStore{DB: db},
	}
}
