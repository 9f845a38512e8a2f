package main

import "time"

type Config struct {
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	UID               string        `env:"WHISPR_UID"`
	DisplayName       string        `env:"WHISPR_DISPLAY_NAME"`
	PhotoURL          string        `env:"WHISPR_PHOTO_URL"`
	GuestMode         bool          `env:"WHISPR_GUEST,default=false"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	MintAttempts      int           `env:"MINT_ATTEMPTS,default=64"`
}
