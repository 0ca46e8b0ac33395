package util

import (
	"flag"
	"strconv"

	"github.com/golang/glog"
	"github.com/urfave/cli"
)

// VerbosityFlag is shared by all commands and forwarded to glog's -v.
var VerbosityFlag = cli.IntFlag{
	Name:  "verbosity, V",
	Value: 0,
	Usage: "glog verbosity level",
}

// SetupGlog marks the glog flag set as parsed, sends everything to
// stderr and sets the verbosity. The commands parse their own flags
// with cli, so glog never sees os.Args.
func SetupGlog(verbosity int) {
	flag.CommandLine.Parse([]string{})
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(verbosity))
	glog.V(2).Infoln("glog verbosity", verbosity)
}
