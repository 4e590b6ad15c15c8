package main

import (
	"errors"
	"os"
	"strings"

	"github.com/chibios-tools/ioc2chcfg/internal/cmd"
	"github.com/chibios-tools/ioc2chcfg/internal/config"
	"github.com/chibios-tools/ioc2chcfg/internal/configpaths"
	"github.com/chibios-tools/ioc2chcfg/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	paths := configpaths.ConfigCandidatePaths(userCfg, configpaths.AppName, "convert", "inspect")

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name(configpaths.AppName),
		kong.Description("Convert STM32CubeMX projects into ChibiOS board configurations"),
		kong.UsageOnError(),
		// Flags and environment override configuration files.
		kong.Configuration(kong.JSON, paths.JSON...),
		kong.Configuration(kongyaml.Loader, paths.YAML...),
		kong.Configuration(kongtoml.Loader, paths.TOML...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	closeAll := func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}

	ctx.Bind(logger)
	err = ctx.Run()

	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		logger.Error("conversion aborted", "error", exitErr.Err, "code", exitErr.Code)
		closeAll()
		os.Exit(exitErr.Code)
	}
	closeAll()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("IOC2CHCFG_CONFIG")
}
