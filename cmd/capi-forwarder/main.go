package main

import (
	"github.com/leshachaplin/capi-forwarder/app"
	"github.com/leshachaplin/capi-forwarder/internal/config"
)

func main() {
	app.New(config.Load).Start()
}
