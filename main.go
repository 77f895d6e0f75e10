package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"holdermap/api"
	"holdermap/config"
	"holdermap/tasks"
	"holdermap/util/log"
)

var pprofEnabled bool
var pprofPort int

func init() {
	flag.BoolVar(&pprofEnabled, "pprof", false, "enable pprof")
	flag.IntVar(&pprofPort, "p", 6060, "pprof port number")
}

func main() {
	flag.Parse()
	config.Load(true)
	log.Init(config.DebugMode())
	log.SetPrefix(config.GetLabel())

	if pprofEnabled {
		enablePProf()
	}

	holderTask := tasks.Run(context.Background())

	server := api.New(holderTask)
	if err := server.Start(config.GetListenAddr()); err != nil {
		log.Fatal(err)
	}
}

func enablePProf() {
	if pprofPort < 1 || pprofPort > 65535 {
		panic("Incorrect pprof port")
	}

	go func() {
		url := fmt.Sprintf("localhost:%d", pprofPort)
		log.Debug(http.ListenAndServe(url, nil))
	}()
}
