package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/reduce"
	"github.com/bjaus/reduce/internal/profile"
	"github.com/bjaus/reduce/reducezap"
)

// maxLine bounds the size of one recorded action.
const maxLine = 1 << 20

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	State   string
	Actions string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Fold an action log into a profile",
		Long: `Replay reads a profile and a log of actions, one JSON envelope per line,
reduces every action in order and prints the final profile as JSON.

Exit codes:
  0 - Replay succeeded
  1 - An action could not be decoded or reduced
  2 - Command error (file not found, malformed state, etc.)

Examples:
  transmute replay --actions ./actions.jsonl
  transmute replay --state ./profile.json --actions ./actions.jsonl -v
  cat actions.jsonl | transmute replay --actions -`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "", "path to the initial profile, JSON or YAML (defaults to the zero profile)")
	cmd.Flags().StringVar(&opts.Actions, "actions", "", "path to the action log, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("actions")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	logger := opts.logger(cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	state, err := loadState(opts.State)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load state", err)
	}

	in, closeIn, err := openActions(opts.Actions, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open actions", err)
	}
	defer closeIn()

	actions, err := decodeActions(profile.NewDecoder(), in)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to decode actions", err)
	}

	r, err := profile.NewReducer(reducezap.Options(logger)...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build reducer", err)
	}

	final, err := reduce.Fold[profile.Profile](r, state, actions...)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to replay actions", err)
	}
	logger.Info("replay complete", zap.Int("actions", len(actions)))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(final); err != nil {
		return WrapExitError(ExitCommandError, "failed to write profile", err)
	}
	return nil
}

// loadState reads a JSON or YAML profile, chosen by file extension.
func loadState(path string) (profile.Profile, error) {
	var p profile.Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

func openActions(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// decodeActions decodes one action per non-blank line.
func decodeActions(d *reduce.Decoder, r io.Reader) ([]any, error) {
	var actions []any
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		action, err := d.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		actions = append(actions, action)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}
