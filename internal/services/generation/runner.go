package generation

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/screenlab/screener-api/pkg/errors"
)

// ScriptRunner runs the Python analyzer as a subprocess
type ScriptRunner struct {
	pythonBin  string
	scriptPath string
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewScriptRunner creates an analyzer runner for the configured script
func NewScriptRunner(pythonBin, scriptPath string, timeout time.Duration, logger zerolog.Logger) *ScriptRunner {
	return &ScriptRunner{
		pythonBin:  pythonBin,
		scriptPath: scriptPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Analyze invokes the analyzer script. Its stdout is ignored, findings come
// back through outFile. On failure a bounded stderr excerpt travels with the
// error so callers can surface a useful diagnostic.
func (r *ScriptRunner) Analyze(ctx context.Context, videoPath, outFile string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.pythonBin, r.scriptPath,
		"--video-path", videoPath,
		"--out-file", outFile,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug().
		Str("video_path", videoPath).
		Str("out_file", outFile).
		Msg("Starting analyzer")

	started := time.Now()
	if err := cmd.Run(); err != nil {
		r.logger.Error().
			Err(err).
			Dur("elapsed", time.Since(started)).
			Str("stderr", apperrors.Truncate(stderr.String(), apperrors.MaxDiagnosticLen)).
			Msg("Analyzer failed")
		return apperrors.Generation("analyzer process failed", stderr.String(), err)
	}

	r.logger.Debug().Dur("elapsed", time.Since(started)).Msg("Analyzer finished")
	return nil
}
