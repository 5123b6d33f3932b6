package args

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// newSplitFlags mirrors the new-split schema: string flags plus the
// help bool cobra registers on every command.
func newSplitFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("new-split", pflag.ContinueOnError)
	fs.String("direction", "auto", "")
	fs.String("class", "", "")
	fs.BoolP("help", "h", false, "")
	return fs
}

func sendToSplitFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("send-to-split", pflag.ContinueOnError)
	fs.String("target", "focused", "")
	fs.String("class", "", "")
	fs.BoolP("help", "h", false, "")
	return fs
}

func TestParseFlagsOnly(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=right"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Captured {
		t.Errorf("Captured = true, want false")
	}
	if got, _ := fs.GetString("direction"); got != "right" {
		t.Errorf("direction: got %q, want %q", got, "right")
	}
}

func TestExecCapture(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=right", "-e", "vim", "file.txt"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Captured {
		t.Fatal("Captured = false, want true")
	}
	want := []string{"vim", "file.txt"}
	if len(res.Capture) != len(want) {
		t.Fatalf("Capture: got %v, want %v", res.Capture, want)
	}
	for i := range want {
		if res.Capture[i] != want[i] {
			t.Fatalf("Capture: got %v, want %v", res.Capture, want)
		}
	}
	if got, _ := fs.GetString("direction"); got != "right" {
		t.Errorf("direction: got %q, want %q", got, "right")
	}
}

func TestExecCapturePreservesTokenBoundaries(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"-e", "sh", "-c", "echo  hi"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Flags after the sentinel are part of the command, and internal
	// whitespace is not re-split.
	want := []string{"sh", "-c", "echo  hi"}
	for i := range want {
		if res.Capture[i] != want[i] {
			t.Fatalf("Capture: got %v, want %v", res.Capture, want)
		}
	}
}

func TestExecCaptureKeepsFlagLikeTokens(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"-e", "--direction=up"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Capture) != 1 || res.Capture[0] != "--direction=up" {
		t.Fatalf("Capture: got %v, want [--direction=up]", res.Capture)
	}
	// The flag before the sentinel keeps its default.
	if got, _ := fs.GetString("direction"); got != "auto" {
		t.Errorf("direction: got %q, want %q", got, "auto")
	}
}

func TestExecSentinelAsFinalToken(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=up", "-e"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Captured {
		t.Fatal("Captured = false, want true")
	}
	if len(res.Capture) != 0 {
		t.Errorf("Capture: got %v, want empty", res.Capture)
	}
}

func TestBareTokenWithoutSentinelIsStray(t *testing.T) {
	fs := newSplitFlags()
	res, err := Parse(fs, ExecSentinel("-e"), []string{"vim"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Captured {
		t.Error("Captured = true, want false")
	}
	if len(res.Stray) != 1 || res.Stray[0] != "vim" {
		t.Errorf("Stray: got %v, want [vim]", res.Stray)
	}
}

func TestFreeTextCapture(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Captured || len(res.Capture) != 2 {
		t.Fatalf("Capture: got %v (captured=%v), want [hello world]", res.Capture, res.Captured)
	}
}

func TestFreeTextFlagValueNotClaimed(t *testing.T) {
	// "2" is the value of --target, not the start of the text.
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"--target", "2", "vim", "file.txt"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, _ := fs.GetString("target"); got != "2" {
		t.Errorf("target: got %q, want %q", got, "2")
	}
	want := []string{"vim", "file.txt"}
	if len(res.Capture) != len(want) || res.Capture[0] != want[0] || res.Capture[1] != want[1] {
		t.Fatalf("Capture: got %v, want %v", res.Capture, want)
	}
}

func TestFreeTextSingleQuotedToken(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"--target=2", "vim file.txt"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Capture) != 1 || res.Capture[0] != "vim file.txt" {
		t.Fatalf("Capture: got %v, want [\"vim file.txt\"]", res.Capture)
	}
}

func TestCaptureStopsFlagParsing(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"hello", "--target=2"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"hello", "--target=2"}
	if len(res.Capture) != 2 || res.Capture[0] != want[0] || res.Capture[1] != want[1] {
		t.Fatalf("Capture: got %v, want %v", res.Capture, want)
	}
	if got, _ := fs.GetString("target"); got != "focused" {
		t.Errorf("target: got %q, want default %q", got, "focused")
	}
}

func TestFreeTextAfterTerminator(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"--", "hello"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Captured || len(res.Capture) != 1 || res.Capture[0] != "hello" {
		t.Fatalf("Capture: got %v (captured=%v), want [hello]", res.Capture, res.Captured)
	}
}

func TestFlagLikeTokenAfterTerminatorIsStray(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"--", "--weird"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Captured {
		t.Error("Captured = true, want false")
	}
	if len(res.Stray) != 1 || res.Stray[0] != "--weird" {
		t.Errorf("Stray: got %v, want [--weird]", res.Stray)
	}
}

func TestUnknownFlagIsError(t *testing.T) {
	fs := newSplitFlags()
	_, err := Parse(fs, ExecSentinel("-e"), []string{"--bogus"})
	if err == nil {
		t.Fatal("want error for unknown flag")
	}
	if !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("error = %q, want it to mention the unknown flag", err)
	}
}

func TestUnknownFlagBeforeCaptureIsError(t *testing.T) {
	fs := sendToSplitFlags()
	_, err := Parse(fs, FreeText(), []string{"--bogus", "hello"})
	if err == nil {
		t.Fatal("want error for unknown flag")
	}
}

func TestMissingFlagValueIsError(t *testing.T) {
	fs := sendToSplitFlags()
	_, err := Parse(fs, FreeText(), []string{"--target"})
	if err == nil {
		t.Fatal("want error for missing flag value")
	}
}

func TestHelp(t *testing.T) {
	for _, tok := range []string{"--help", "-h"} {
		t.Run(tok, func(t *testing.T) {
			fs := newSplitFlags()
			_, err := Parse(fs, ExecSentinel("-e"), []string{tok})
			if !errors.Is(err, ErrHelp) {
				t.Errorf("Parse(%q): error = %v, want ErrHelp", tok, err)
			}
		})
	}
}

func TestHelpWithoutRegisteredFlag(t *testing.T) {
	// Without a registered help flag, pflag itself reports ErrHelp.
	fs := pflag.NewFlagSet("bare", pflag.ContinueOnError)
	fs.String("direction", "auto", "")
	_, err := Parse(fs, nil, []string{"--help"})
	if !errors.Is(err, ErrHelp) {
		t.Errorf("error = %v, want ErrHelp", err)
	}
}

func TestHelpAfterCaptureIsText(t *testing.T) {
	fs := sendToSplitFlags()
	res, err := Parse(fs, FreeText(), []string{"hello", "--help"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Capture) != 2 || res.Capture[1] != "--help" {
		t.Fatalf("Capture: got %v, want [hello --help]", res.Capture)
	}
}

func TestParseLenientWarnings(t *testing.T) {
	fs := newSplitFlags()
	res, err := ParseLenient(fs, []string{"--bogus=1", "--direction=down", "stray"})
	if err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	if got, _ := fs.GetString("direction"); got != "down" {
		t.Errorf("direction: got %q, want %q", got, "down")
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("Warnings: got %v, want 2 entries", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "--bogus") {
		t.Errorf("Warnings[0] = %q, want it to name --bogus", res.Warnings[0])
	}
	if !strings.Contains(res.Warnings[1], `"stray"`) {
		t.Errorf("Warnings[1] = %q, want it to name the stray token", res.Warnings[1])
	}
}

func TestParseLenientSkipsUnknownFlagValue(t *testing.T) {
	fs := newSplitFlags()
	res, err := ParseLenient(fs, []string{"--bogus", "value", "--direction=left"})
	if err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings: got %v, want exactly one", res.Warnings)
	}
	if got, _ := fs.GetString("direction"); got != "left" {
		t.Errorf("direction: got %q, want %q", got, "left")
	}
}

func TestParseLenientThenStrict(t *testing.T) {
	fs := newSplitFlags()
	if _, err := ParseLenient(fs, []string{"--direction=down"}); err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}

	// The user's own flags still parse strictly and win.
	res, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=up"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, _ := fs.GetString("direction"); got != "up" {
		t.Errorf("direction: got %q, want %q", got, "up")
	}
	if len(res.Stray) != 0 {
		t.Errorf("Stray: got %v, want none", res.Stray)
	}

	// And unknown flags are errors again after the lenient pass.
	fs2 := newSplitFlags()
	if _, err := ParseLenient(fs2, []string{"--direction=down"}); err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	if _, err := Parse(fs2, ExecSentinel("-e"), []string{"--bogus"}); err == nil {
		t.Fatal("want error for unknown flag after lenient pass")
	}
}

func TestParseLenientDefaultsDoNotLeakStray(t *testing.T) {
	fs := newSplitFlags()
	if _, err := ParseLenient(fs, []string{"oops"}); err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	// pflag resets positionals per Parse call, so the stray defaults
	// token must not show up in the user parse.
	res, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=right"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Stray) != 0 {
		t.Errorf("Stray: got %v, want none", res.Stray)
	}
}

func TestParseLenientResetsHelp(t *testing.T) {
	fs := newSplitFlags()
	res, err := ParseLenient(fs, []string{"--help"})
	if err != nil {
		t.Fatalf("ParseLenient: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "--help") {
		t.Fatalf("Warnings: got %v, want one naming --help", res.Warnings)
	}
	if _, err := Parse(fs, ExecSentinel("-e"), []string{"--direction=right"}); err != nil {
		t.Fatalf("strict parse after lenient --help: %v", err)
	}
}
