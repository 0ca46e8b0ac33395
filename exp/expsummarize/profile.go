package main

import (
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/urfave/cli"
)

var profileFlags = []cli.Flag{
	cli.BoolFlag{Name: "cpuprofile", Usage: "write cpu profile to <resultados>/profile"},
	cli.BoolFlag{Name: "memprofile", Usage: "write memory profile to <resultados>/profile"},
	cli.BoolFlag{Name: "blockprofile", Usage: "write contention profile to <resultados>/profile"},
}

func profilingEnabled(c *cli.Context) bool {
	return c.Bool("cpuprofile") || c.Bool("memprofile") || c.Bool("blockprofile")
}

// generateProfilingConfig picks one profile; pkg/profile runs a single
// mode at a time and cpu wins over memory over block.
func generateProfilingConfig(c *cli.Context, results string) []func(*profile.Profile) {
	opts := []func(*profile.Profile){
		profile.ProfilePath(filepath.Join(results, "profile")),
		profile.NoShutdownHook,
	}
	switch {
	case c.Bool("cpuprofile"):
		opts = append(opts, profile.CPUProfile)
	case c.Bool("memprofile"):
		opts = append(opts, profile.MemProfile)
	case c.Bool("blockprofile"):
		opts = append(opts, profile.BlockProfile)
	}
	return opts
}
