package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazystrings/internal/completion"
)

const shellCompletionFlag = "--generate-shell-completion"

var completionArgs = func() []string { return os.Args }

// completeRoot suggests flag values (themes, config keys) and otherwise
// falls back to subcommand and flag names.
func completeRoot(ctx context.Context, cmd *urfavecli.Command) {
	if completeFlagValue(cmd.Root().Writer, completionArgs()) {
		return
	}
	urfavecli.DefaultCompleteWithFlags(ctx, cmd)
}

// completeFlagValue prints candidates when the word before the completion
// marker is a flag with known values.
func completeFlagValue(w io.Writer, args []string) bool {
	n := len(args)
	if n > 0 && args[n-1] == shellCompletionFlag {
		n--
	}
	if n < 2 {
		return false
	}
	values := completion.Suggest(args[n-1], "")
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	return true
}
