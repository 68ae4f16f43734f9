package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tuiassist/internal/config"
	"tuiassist/internal/logger"
)

func configMain(root rootArgs, args []string) {
	if err := runConfig(root, args, os.Stdout); err != nil {
		logger.Fatalf("config: %v", err)
	}
}

// runConfig 打印文件、环境变量与 -c 合并后的配置（token 打码）；--write 时写回配置文件。
func runConfig(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var write bool
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.tuiassist/config.toml)")
	fs.BoolVar(&write, "write", false, "Persist the effective config to the config file")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all := prependOverrides(root.overrides, []string(overrides))
	cfg, err := config.LoadFor(cfgPath, config.ProviderOverride(all))
	if err != nil {
		return err
	}
	cfg, err = config.ApplyKVOverrides(cfg, all)
	if err != nil {
		return err
	}
	if write {
		if err := config.Save(cfg.Source, cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "wrote %s\n", cfg.Source)
		return nil
	}
	data, err := config.Marshal(cfg.Redacted())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "# %s\n%s", cfg.Source, strings.TrimLeft(string(data), "\n"))
	return nil
}
