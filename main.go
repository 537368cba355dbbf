package main

import (
	"flag"
	"log"

	"github.com/opsdrill/exercise-backend/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunServer := flag.Bool("server", false, "Run server")
	shouldRunTaskQueue := flag.Bool("worker", false, "Run task queue workers")
	flag.Parse()

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunTaskQueue {
		if err := cmd.RunTaskQueue(); err != nil {
			log.Fatal(err)
		}
	}
}
