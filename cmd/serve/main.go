// Command serve publishes a directory over HTTP, logging every request.
//
// Usage:
//
//	serve [-addr host:port] <dir>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatos/internal/fileserver"
)

func main() {
	addr := flag.String("addr", fileserver.DefaultAddr, "listen address")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-addr host:port] <dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	srv, err := fileserver.New(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("Serve: shutdown: %v", err)
		}
	}()

	if err := srv.Start(*addr); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
