package transcoder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/service/common"
)

// ffmpegTranscoder implements Transcoder using the ffmpeg CLI
type ffmpegTranscoder struct {
	cmdRunner common.CmdRunner
}

// NewFFmpegTranscoder creates a new Transcoder with the default CmdRunner
func NewFFmpegTranscoder() Transcoder {
	return &ffmpegTranscoder{
		cmdRunner: common.NewCmdRunner(),
	}
}

// NewFFmpegTranscoderWithCmdRunner creates a new Transcoder with a custom CmdRunner (for testing)
func NewFFmpegTranscoderWithCmdRunner(cmdRunner common.CmdRunner) Transcoder {
	return &ffmpegTranscoder{
		cmdRunner: cmdRunner,
	}
}

// Cut produces a stream-copied sub-clip without re-encoding.
// Input seeking (-ss before -i) lets ffmpeg seek remote sources without
// downloading the leading bytes; -c copy preserves the original codec data.
func (t *ffmpegTranscoder) Cut(ctx context.Context, sourceRef string, startOffset, duration float64, outputPath string) error {
	if sourceRef == "" {
		return errors.New(errors.CodeInvalidArg, "source reference is required")
	}
	if duration < 0 {
		return errors.New(errors.CodeInvalidArg, "duration must not be negative")
	}

	args := []string{
		"-ss", formatSeconds(startOffset),
		"-t", formatSeconds(duration),
		"-i", sourceRef,
		"-c", "copy",
		"-loglevel", "error",
		"-y",
		outputPath,
	}

	if _, err := t.cmdRunner.Run(ctx, "ffmpeg", args...); err != nil {
		return errors.Wrap(err, errors.CodeExternal, formatFFmpegError(err, "clip cut failed"))
	}
	return nil
}

// ExtractFrame extracts a single still frame at offsetSeconds
func (t *ffmpegTranscoder) ExtractFrame(ctx context.Context, sourceRef string, offsetSeconds float64, outputPath string) error {
	if sourceRef == "" {
		return errors.New(errors.CodeInvalidArg, "source reference is required")
	}

	args := []string{
		"-ss", formatSeconds(offsetSeconds),
		"-i", sourceRef,
		"-frames:v", "1",
		"-q:v", "2",
		"-loglevel", "error",
		"-y",
		outputPath,
	}

	if _, err := t.cmdRunner.Run(ctx, "ffmpeg", args...); err != nil {
		return errors.Wrap(err, errors.CodeExternal, formatFFmpegError(err, "frame extraction failed"))
	}
	return nil
}

// formatSeconds renders a seconds value the way ffmpeg expects offsets
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// formatFFmpegError provides friendlier messages for common ffmpeg failures
func formatFFmpegError(err error, operation string) string {
	errMsg := err.Error()
	if tail := common.StderrTail(err); tail != "" {
		errMsg = strings.TrimSpace(tail)
	}

	switch {
	case strings.Contains(errMsg, "executable file not found"):
		return "ffmpeg is not installed or not found in PATH"
	case strings.Contains(errMsg, "No such file or directory"):
		return fmt.Sprintf("%s: source not found", operation)
	case strings.Contains(errMsg, "Invalid data found"):
		return fmt.Sprintf("%s: source is not a readable media file", operation)
	case strings.Contains(errMsg, "403") || strings.Contains(errMsg, "Forbidden"):
		return fmt.Sprintf("%s: source URL rejected the request (expired presigned URL?)", operation)
	default:
		return fmt.Sprintf("%s - %s", operation, errMsg)
	}
}
