package main

import (
	"errors"
	"flag"
	"strings"
)

type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var errMissingOverride = errors.New("-c requires key=value")

type rootArgs struct {
	overrides []string
}

// parseRootArgs 取出子命令之前的 -c key=value，其余参数原样交给子命令或交互模式。
func parseRootArgs(args []string) (rootArgs, []string, error) {
	var root rootArgs
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-c" || arg == "--c":
			if i+1 >= len(args) {
				return rootArgs{}, nil, errMissingOverride
			}
			root.overrides = append(root.overrides, args[i+1])
			i++
		case strings.HasPrefix(arg, "-c=") || strings.HasPrefix(arg, "--c="):
			root.overrides = append(root.overrides, arg[strings.Index(arg, "=")+1:])
		case arg == "--":
			rest = append(rest, args[i:]...)
			return root, rest, nil
		default:
			rest = append(rest, arg)
		}
	}
	return root, rest, nil
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}

// interactiveArgs captures flags shared by the interactive entrypoint and exec.
type interactiveArgs struct {
	cfgPath          string
	modelOverride    string
	providerOverride string
	prompt           string
	language         string
	configOverrides  stringSlice
	copyableOutput   bool
	noArchive        bool
}

func newInteractiveFlagSet(name string, errorHandling flag.ErrorHandling) (*flag.FlagSet, *interactiveArgs) {
	fs := flag.NewFlagSet(name, errorHandling)
	args := &interactiveArgs{}

	fs.StringVar(&args.cfgPath, "config", "", "Path to config file (default ~/.tuiassist/config.toml)")
	fs.StringVar(&args.modelOverride, "model", "", "Model override")
	fs.StringVar(&args.modelOverride, "m", "", "Alias for --model")
	fs.StringVar(&args.providerOverride, "provider", "", "Provider override (openai|anthropic|echo)")
	fs.StringVar(&args.prompt, "prompt", "", "Initial prompt")
	fs.StringVar(&args.language, "lang", "", "UI language (en|zh)")
	fs.Var(&args.configOverrides, "c", "Override config value key=value (repeatable)")
	fs.BoolVar(&args.copyableOutput, "copyable-output", false, "Disable alt screen to allow mouse selection/copy")
	fs.BoolVar(&args.noArchive, "no-archive", false, "Do not archive the transcript on exit")

	return fs, args
}

func (i *interactiveArgs) finalizePrompt(fs *flag.FlagSet) {
	if i.prompt == "" && fs.NArg() > 0 {
		i.prompt = strings.Join(fs.Args(), " ")
	}
}
