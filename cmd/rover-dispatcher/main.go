package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/roverlink-io/roverlink/cmd/rover-dispatcher/app"
)

func main() {
	app.NewApp().Run()
}
