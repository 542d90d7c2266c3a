package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	tilde "gopkg.in/mattes/go-expand-tilde.v1"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/svgpress/svgpress/cli"
)

var rootDir string
var extraPlugins cli.StringsFlag
var logLevel = cli.LevelFlag(logrus.InfoLevel)
var logFile string
var dumpConfig bool

func init() {
	flag.StringVar(&rootDir, "root", "~/.svgpress", "path to folder containing svgpress data")
	flag.Var(&logLevel, "log-level", "controls verbosity of logging output")
	flag.Var(&extraPlugins, "plugin", "path to shared plugin .so file, multiple plugins may be given")
	flag.StringVar(&logFile, "log-file", "", "also write logs to this file, with rotation")
	flag.BoolVar(&dumpConfig, "dump-config", false, "print the effective configuration and exit")

	flag.Usage = func() {
		fmt.Println("Usage: ", os.Args[0], "[options]")
		fmt.Println()
		fmt.Println("svgpress watches export folders and compresses exported SVGs in place.")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	bp, err := tilde.Expand(rootDir)
	if err != nil {
		logrus.Fatalln(err)
	}
	err = os.MkdirAll(bp, 0755)
	if err != nil {
		logrus.Fatalln(err)
	}
	rootDir = bp
}

func main() {
	logrus.SetLevel(logLevel.Level())
	if logFile != "" {
		logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
		}))
	}
	m, err := cli.NewManager(rootDir, extraPlugins...)
	if err != nil {
		logrus.Fatalln("error initializing svgpress:", err)
	}
	if dumpConfig {
		spew.Dump(m.Config)
		return
	}
	if err := m.Start(); err != nil {
		logrus.Fatalln("error starting svgpress:", err)
	}
	if err = m.Loop(); err != nil {
		logrus.Fatalln("exiting main loop with error:", err)
	}
}
