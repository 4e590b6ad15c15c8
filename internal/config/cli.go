// Package config defines the command line of ioc2chcfg.
package config

import "github.com/chibios-tools/ioc2chcfg/internal/cmd"

// Log configures the process logger.
type Log struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"IOC2CHCFG_LOG_LEVEL"`
	File  string `help:"Also write the log to this file" env:"IOC2CHCFG_LOG_FILE" type:"path"`
}

// CLI is the root of the command line.
type CLI struct {
	Log        Log    `embed:"" prefix:"log."`
	ConfigFile string `name:"config" help:"Configuration file (JSON, YAML or TOML)" env:"IOC2CHCFG_CONFIG" type:"path"`

	Convert cmd.Convert       `cmd:"" help:"Convert a CubeMX project into a ChibiOS board configuration" default:"withargs"`
	Inspect cmd.Inspect       `cmd:"" help:"Show the pin configuration of a CubeMX project"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}
