// Package args parses weftctl's hybrid command lines: typed flags up
// front, with an optional switch into verbatim trailing capture.
//
// Standard flags are handled by pflag. Before each token is matched, a
// per-verb hook may claim the remainder of the stream; claimed tokens
// are drained into the result untouched and flag parsing stops. This is
// how `new-split -e vim file.txt` keeps "vim file.txt" as an exec
// vector, and `send-to-split hello world` keeps free text, without
// pflag seeing either.
package args

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned when the command line asks for usage text instead
// of a parse. Callers print help and exit zero.
var ErrHelp = pflag.ErrHelp

// Claim is a hook's decision about the current token.
type Claim int

const (
	// Decline leaves the token to standard flag parsing.
	Decline Claim = iota
	// ClaimFrom captures the current token and everything after it.
	ClaimFrom
	// ClaimAfter captures everything after the current token; the token
	// itself is dropped.
	ClaimAfter
)

// Hook inspects one token and decides whether to switch from flag
// parsing into raw capture. It is consulted before standard matching,
// and never sees tokens that are values of a preceding flag.
type Hook func(token string) Claim

// ExecSentinel returns a hook that claims the remainder of the stream
// after the exact sentinel token. The sentinel is not captured.
func ExecSentinel(sentinel string) Hook {
	return func(token string) Claim {
		if token == sentinel {
			return ClaimAfter
		}
		return Decline
	}
}

// FreeText returns a hook that claims from the first token that does
// not look like a flag. The token is captured.
func FreeText() Hook {
	return func(token string) Claim {
		if !strings.HasPrefix(token, "-") {
			return ClaimFrom
		}
		return Decline
	}
}

// Result is one parsed command line. Flag values land in the FlagSet
// the caller supplied.
type Result struct {
	// Capture holds raw-captured tokens. It is non-nil exactly when
	// Captured is true; a sentinel with nothing after it leaves an
	// empty capture for validation to reject.
	Capture []string
	// Captured reports whether the hook claimed the stream.
	Captured bool
	// Stray holds positional tokens pflag collected. Only tokens a
	// hook never claimed end up here (for example anything after a
	// bare "--" that still looks like a flag).
	Stray []string
	// Warnings collects diagnostics from lenient parsing.
	Warnings []string
}

// Parse splits tokens into a flag region and an optional raw capture,
// then parses the flag region with fs. Unknown flags are an error.
// Returns ErrHelp when -h/--help was given.
func Parse(fs *pflag.FlagSet, hook Hook, tokens []string) (*Result, error) {
	return parse(fs, hook, tokens, false)
}

// ParseLenient parses trusted-but-unvalidated token lists, such as the
// per-verb defaults from the config file: unknown flags and stray
// tokens become warnings instead of errors, and no capture hook
// applies. The caller runs the strict Parse for user input afterwards
// on the same FlagSet; pflag resets positionals on each Parse call, so
// only flag values carry over.
func ParseLenient(fs *pflag.FlagSet, tokens []string) (*Result, error) {
	fs.ParseErrorsWhitelist.UnknownFlags = true
	defer func() { fs.ParseErrorsWhitelist.UnknownFlags = false }()
	return parse(fs, nil, tokens, true)
}

func parse(fs *pflag.FlagSet, hook Hook, tokens []string, lenient bool) (*Result, error) {
	res := &Result{}

	flagRegion := tokens
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if hook != nil {
			claim := hook(tok)
			if claim == ClaimFrom {
				res.Capture = tokens[i:]
				res.Captured = true
				flagRegion = tokens[:i]
				break
			}
			if claim == ClaimAfter {
				res.Capture = tokens[i+1:]
				res.Captured = true
				flagRegion = tokens[:i]
				break
			}
		}
		if takesValue(fs, tok) {
			i += 2
			continue
		}
		i++
	}

	if lenient {
		res.Warnings = lintDefaults(fs, flagRegion)
	}

	if err := fs.Parse(flagRegion); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, err
	}
	res.Stray = fs.Args()

	// cobra registers --help/-h on every command, so pflag parses them
	// as an ordinary bool instead of returning ErrHelp.
	if f := fs.Lookup("help"); f != nil && f.Changed {
		if lenient {
			// Help smuggled into config defaults must not trip the
			// strict parse of the user's own argv.
			_ = f.Value.Set("false")
			f.Changed = false
			res.Warnings = append(res.Warnings, "ignoring --help in defaults")
			return res, nil
		}
		return nil, ErrHelp
	}

	return res, nil
}

// takesValue reports whether tok is a defined flag that consumes the
// following token as its value, meaning that token must not be shown
// to the capture hook.
func takesValue(fs *pflag.FlagSet, tok string) bool {
	if strings.HasPrefix(tok, "--") {
		name, _, hasValue := strings.Cut(tok[2:], "=")
		if hasValue || name == "" {
			return false
		}
		f := fs.Lookup(name)
		return f != nil && f.Value.Type() != "bool"
	}
	if strings.HasPrefix(tok, "-") && len(tok) == 2 {
		f := fs.ShorthandLookup(tok[1:])
		return f != nil && f.Value.Type() != "bool"
	}
	return false
}

// lintDefaults reports tokens the lenient parse skips, so typos in the
// config file surface instead of silently doing nothing. The skip rules
// mirror pflag's unknown-flag handling: an unknown flag without an
// inline value also consumes a following non-flag token.
func lintDefaults(fs *pflag.FlagSet, tokens []string) []string {
	var warns []string
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		skip := 1
		switch {
		case tok == "--":
			for _, rest := range tokens[i+1:] {
				warns = append(warns, fmt.Sprintf("ignoring stray token %q in defaults", rest))
			}
			return warns
		case strings.HasPrefix(tok, "--"):
			name, _, hasValue := strings.Cut(tok[2:], "=")
			f := fs.Lookup(name)
			if f == nil {
				warns = append(warns, fmt.Sprintf("ignoring unknown flag --%s in defaults", name))
				if !hasValue && i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
					skip = 2
				}
			} else if !hasValue && f.Value.Type() != "bool" {
				skip = 2
			}
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			f := fs.ShorthandLookup(tok[1:2])
			if f == nil {
				warns = append(warns, fmt.Sprintf("ignoring unknown flag %s in defaults", tok))
				if !strings.Contains(tok, "=") && i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
					skip = 2
				}
			} else if len(tok) == 2 && f.Value.Type() != "bool" {
				skip = 2
			}
		default:
			warns = append(warns, fmt.Sprintf("ignoring stray token %q in defaults", tok))
		}
		i += skip
	}
	return warns
}
