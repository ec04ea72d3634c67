package main

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"xdfflow/config"
	"xdfflow/internal/converter"
	"xdfflow/logger"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	inputPath := flag.String("input", "", "Path to the XDF recording to convert")
	streamArg := flag.String("streams", "", "Comma-separated 1-based stream indices to convert (default: all continuous streams)")

	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithFields(logger.Fields{"path": *configPath}).Warn("config file not found, using defaults")
			cfg = config.Default()
		} else {
			log.WithError(err).Error("Failed to load configuration")
			os.Exit(1)
		}
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	if *streamArg != "" {
		indices, err := parseIndices(*streamArg)
		if err != nil {
			log.WithError(err).Error("invalid -streams argument")
			os.Exit(1)
		}
		cfg.Converter.StreamIndices = indices
	}

	if *inputPath == "" {
		log.Error("no input recording given, use -input")
		flag.Usage()
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Xdfflow.Name,
		"version": cfg.Xdfflow.Version,
		"input":   *inputPath,
	}).Info("starting xdfflow")

	c := converter.New(cfg)
	res, err := c.ConvertFile(*inputPath)
	if err != nil {
		log.WithError(err).Error("conversion failed")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"conversion_id": res.Recording.ID,
		"channels":      len(res.Recording.Labels),
		"samples":       len(res.Recording.Times),
		"sample_rate":   res.Recording.SampleRate,
		"events":        len(res.Events),
	}).Info("xdfflow finished")
}

func parseIndices(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
