package main

import (
	appfx "github.com/DanielUlisses/organizador-financeiro/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
