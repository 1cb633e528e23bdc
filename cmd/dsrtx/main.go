/*
NAME
  main.go

DESCRIPTION
  dsrtx is the command-line front end: it loads a configuration file,
  opens the configured RF sink, and runs the broadcast encoder until
  told to stop.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// dsrtx encodes and transmits a Digitale Satelliten Radio multiplex
// from a configuration file describing its channels and RF output.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ausocean/utils/logging"
	"github.com/spf13/pflag"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/sanslogic/dsrtx/broadcast"
	"github.com/sanslogic/dsrtx/config"
	sinkfile "github.com/sanslogic/dsrtx/sink/file"
)

const (
	logPath      = "dsrtx.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	confFile := pflag.StringP("config", "c", "", "Load configuration from file.")
	verbose := pflag.BoolP("verbose", "V", false, "Enable verbose output.")
	version := pflag.BoolP("version", "v", false, "Print the version and exit.")
	pflag.Parse()

	if *version {
		fmt.Fprintln(os.Stderr, "dsrtx v2")
		return
	}

	level := logging.Info
	if *verbose {
		level = logging.Debug
	}
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(level, fileLog, true)

	if *confFile == "" {
		log.Fatal("no configuration file specified")
	}

	cfg, err := config.Load(*confFile)
	if err != nil {
		log.Fatal("failed to load configuration", "error", err.Error())
	}

	if *verbose {
		logActiveChannels(cfg, log)
	}

	snk, err := openSink(cfg)
	if err != nil {
		log.Fatal("failed to open output", "error", err.Error())
	}

	enc, err := broadcast.New(cfg, snk, log)
	if err != nil {
		log.Fatal("failed to build encoder", "error", err.Error())
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for range sigCh {
			log.Info("caught signal")
			enc.Cancel()
		}
	}()

	log.Debug("starting broadcast encoder")
	if err := enc.Start(); err != nil {
		log.Fatal("failed to start encoder", "error", err.Error())
	}

	enc.Wait()
	if err := enc.Stop(); err != nil {
		log.Error("failed to stop encoder cleanly", "error", err.Error())
	}
}

func openSink(cfg *config.Config) (*sinkfile.Sink, error) {
	typ, err := parseDataType(cfg.Output.DataType)
	if err != nil {
		return nil, err
	}
	return sinkfile.Open(cfg.Output.Path, typ, cfg.Output.Live)
}

func parseDataType(v string) (sinkfile.DataType, error) {
	switch strings.ToLower(v) {
	case "", "int16":
		return sinkfile.Int16, nil
	case "uint8":
		return sinkfile.UInt8, nil
	case "int8":
		return sinkfile.Int8, nil
	case "uint16":
		return sinkfile.UInt16, nil
	case "int32":
		return sinkfile.Int32, nil
	case "float":
		return sinkfile.Float32, nil
	default:
		return 0, fmt.Errorf("unrecognised output data type %q", v)
	}
}

func logActiveChannels(cfg *config.Config, log logging.Logger) {
	log.Info("active channels")
	for _, c := range cfg.Channels {
		log.Info("channel",
			"number", c.Number,
			"mode", c.Mode,
			"name", c.Name,
			"program_type", c.ProgramType,
			"music", c.Music,
			"source", c.SourceType,
		)
	}
}
