package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

// executeCommand runs rootCmd with args and captures stdout and log output.
func executeCommand(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	log.SetOutput(&errOut)
	defer log.SetOutput(os.Stderr)

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)

	return out.String(), errOut.String(), err
}

func TestRootCmd_ListsSubcommands(t *testing.T) {
	out, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	for _, name := range []string{"serve", "migrate", "seed-images", "refresh-leaderboard"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q:\n%s", name, out)
		}
	}
}

func TestSeedCmd_RejectsInvalidRange(t *testing.T) {
	t.Run("to before from", func(t *testing.T) {
		_, _, err := executeCommand("seed-images", "--from", "10", "--to", "5")
		if err == nil || !strings.Contains(err.Error(), "invalid range") {
			t.Errorf("err = %v, want invalid range error", err)
		}
	})

	t.Run("non positive from", func(t *testing.T) {
		_, _, err := executeCommand("seed-images", "--from", "0", "--to", "5")
		if err == nil || !strings.Contains(err.Error(), "invalid range") {
			t.Errorf("err = %v, want invalid range error", err)
		}
	})
}

func TestSubcommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "refresh-leaderboard"} {
		t.Run(name, func(t *testing.T) {
			if _, _, err := executeCommand(name, "unexpected"); err == nil {
				t.Errorf("%s with a positional argument should fail", name)
			}
		})
	}
}
