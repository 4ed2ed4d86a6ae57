package main

import (
	"encoding/json"
	"errors"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/recmo/kzg-ceremony-coordinator/ceremony"
	"github.com/recmo/kzg-ceremony-coordinator/config"
	"github.com/recmo/kzg-ceremony-coordinator/lagrange"
)

func setup(cCtx *cli.Context) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Workers > 0 {
		runtime.GOMAXPROCS(cfg.Workers)
	}
	return cfg, logger, nil
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Log.Encoding
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func initialize(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 1 {
		return errors.New("please provide the correct arguments")
	}
	_, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	outputPath := cCtx.Args().Get(0)
	data, err := json.Marshal(ceremony.InitialContributions())
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}
	logger.Infow("wrote genesis contribution file", "path", outputPath, "subCeremonies", len(ceremony.Sizes))
	return nil
}

func contribute(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	cfg, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	inputPath := cCtx.Args().Get(0)
	outputPath := cCtx.Args().Get(1)
	contributions, err := readContributions(inputPath, cfg.Schema.Validation)
	if err != nil {
		return err
	}
	logger.Infow("parsed contribution file", "path", inputPath)

	if err := ceremony.ContributeAll(contributions); err != nil {
		return err
	}
	for i, c := range contributions {
		logger.Infow("updated sub-ceremony", "index", i,
			"numG1Powers", len(c.G1Powers), "numG2Powers", len(c.G2Powers))
	}

	data, err := json.Marshal(ceremony.ContributionsToJSON(contributions))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}
	logger.Infow("wrote contribution file", "path", outputPath)
	return nil
}

func verify(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 1 && cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	cfg, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	contributions, err := readContributions(cCtx.Args().Get(0), cfg.Schema.Validation)
	if err != nil {
		return err
	}

	var previous []*ceremony.Contribution
	if cCtx.Args().Len() == 2 {
		previous, err = readContributions(cCtx.Args().Get(1), cfg.Schema.Validation)
		if err != nil {
			return err
		}
	} else {
		previous, err = ceremony.InitialContributions().Parse()
		if err != nil {
			return err
		}
	}

	transcripts := make([]*ceremony.Transcript, len(previous))
	for i, c := range previous {
		transcripts[i] = ceremony.TranscriptFrom(c)
	}
	if err := ceremony.VerifyAll(contributions, transcripts); err != nil {
		return err
	}
	logger.Infow("contribution file verified", "path", cCtx.Args().Get(0))
	return nil
}

func export(cCtx *cli.Context) error {
	// sanity check
	if cCtx.Args().Len() != 2 {
		return errors.New("please provide the correct arguments")
	}
	cfg, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	part := cCtx.Int("part")
	if part < 0 || part >= len(ceremony.Sizes) {
		return errors.New("part is out of range")
	}
	contributions, err := readContributions(cCtx.Args().Get(0), cfg.Schema.Validation)
	if err != nil {
		return err
	}

	transcript := ceremony.TranscriptFrom(contributions[part])
	srs, err := transcript.SRS()
	if err != nil {
		return err
	}
	if cCtx.Bool("lagrange") {
		srs.Pk.G1, err = lagrange.ToLagrange(srs.Pk.G1)
		if err != nil {
			return err
		}
	}

	output, err := os.Create(cCtx.Args().Get(1))
	if err != nil {
		return err
	}
	defer output.Close()
	if _, err := srs.WriteTo(output); err != nil {
		return err
	}
	logger.Infow("exported SRS", "part", part, "lagrange", cCtx.Bool("lagrange"),
		"numG1Powers", len(srs.Pk.G1))
	return nil
}

func readContributions(path string, validateSchema bool) ([]*ceremony.Contribution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := ceremony.FromJSON(data, validateSchema)
	if err != nil {
		return nil, err
	}
	return file.Parse()
}
