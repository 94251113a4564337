package result

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/sparkpipego/internal/task"
)

// StatusArtifactName is the well-known file an executed job leaves in its
// working directory, recording its numeric completion code.
const StatusArtifactName = "exit_status"

// SuccessCode is the documented completion code denoting success.
const SuccessCode = 0

// ErrMissingStatusArtifact means the exit-status file was not found in the
// task's working directory.
var ErrMissingStatusArtifact = errors.New("missing exit-status artifact")

// ErrMalformedStatusArtifact means the exit-status file exists but does not
// hold a bare non-negative base-10 integer on a single line.
var ErrMalformedStatusArtifact = errors.New("malformed exit-status artifact")

// Validate inspects the task's exit-status artifact and sets the task's
// status accordingly: Completed iff the artifact parses to SuccessCode,
// Failed otherwise. A missing or malformed artifact marks the task Failed
// and returns the corresponding sentinel error; downstream tasks stay
// blocked but unrelated dataset groups are unaffected.
func Validate(t *task.Task) error {
	path := filepath.Join(t.WorkDir, StatusArtifactName)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Status = task.StatusFailed
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingStatusArtifact, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrMissingStatusArtifact, path, err)
	}

	code, err := parseExitCode(string(raw))
	if err != nil {
		t.Status = task.StatusFailed
		return fmt.Errorf("%w: %s: %v", ErrMalformedStatusArtifact, path, err)
	}

	if code == SuccessCode {
		t.Status = task.StatusCompleted
	} else {
		t.Status = task.StatusFailed
	}
	return nil
}

// parseExitCode parses the artifact content: exactly one line holding a
// base-10 non-negative integer. A single trailing newline is tolerated;
// anything else (signs, spaces, extra lines, empty content) is malformed.
func parseExitCode(content string) (int, error) {
	line, _ := strings.CutSuffix(content, "\n")
	if line == "" {
		return 0, errors.New("empty content")
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a non-negative integer: %q", line)
		}
	}
	code, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("not a non-negative integer: %q", line)
	}
	return code, nil
}
