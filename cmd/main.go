package main

import (
	"github.com/4dxrsh/ApnaMandi/internal/app"
	"github.com/4dxrsh/ApnaMandi/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
