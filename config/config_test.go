package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

// -----------------------------------------------------------------------
// Initialization

type cfgSuite struct {
	dir string
}

var _ = gc.Suite(&cfgSuite{})

func (s *cfgSuite) SetUpTest(c *gc.C) {
	s.dir = c.MkDir()
}

func (s *cfgSuite) write(c *gc.C, name, content string) string {
	path := filepath.Join(s.dir, name)
	err := ioutil.WriteFile(path, []byte(content), 0644)
	c.Assert(err, gc.IsNil)
	return path
}

// -----------------------------------------------------------------------
// Tests: typed getters

func (*cfgSuite) TestGettersParse(c *gc.C) {
	cfg := NewConfig()
	cfg.Set("n", "4")
	cfg.Set("w", "8,5")
	cfg.Set("b", "true")
	cfg.Set("s", "udp")

	c.Assert(cfg.GetInt("n", 0), gc.Equals, 4)
	c.Assert(cfg.GetFloat("w", 0), gc.Equals, 8.5)
	c.Assert(cfg.GetBool("b", false), gc.Equals, true)
	c.Assert(cfg.GetString("s", ""), gc.Equals, "udp")
	c.Assert(cfg.Has("s"), gc.Equals, true)
	c.Assert(cfg.Has("missing"), gc.Equals, false)
}

func (*cfgSuite) TestGettersFallBackToDefault(c *gc.C) {
	cfg := NewConfig()
	cfg.Set("n", "four")
	cfg.Set("w", "wide")
	cfg.Set("b", "maybe")

	c.Assert(cfg.GetInt("n", 2), gc.Equals, 2)
	c.Assert(cfg.GetFloat("w", DefWidth), gc.Equals, DefWidth)
	c.Assert(cfg.GetBool("b", true), gc.Equals, true)
	c.Assert(cfg.GetString("missing", "x"), gc.Equals, "x")
}

func (*cfgSuite) TestCloneIsIndependent(c *gc.C) {
	cfg := NewConfig()
	cfg.Set("a", "1")
	m := cfg.CloneToKeyValueMap()
	m["a"] = "2"
	c.Assert(cfg.GetString("a", ""), gc.Equals, "1")
}

// -----------------------------------------------------------------------
// Tests: INI files

func (s *cfgSuite) TestLoadINITestName(c *gc.C) {
	path := s.write(c, "udp-conf.ini", "[Teste]\nNome = UDP 100 Mbit/s\n")

	cfg, err := LoadINI(path, TestSection)
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.GetString(TestNameKey, ""), gc.Equals, "UDP 100 Mbit/s")
}

func (s *cfgSuite) TestLoadINILaterSectionWins(c *gc.C) {
	path := s.write(c, SummarizerINI, "[a]\nlargura = 10\n\n[sumarizar]\nlargura = 12\nic = true\n")

	cfg, err := LoadINI(path, "a", SummarizerSection, "absent")
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.GetFloat(WidthKey, DefWidth), gc.Equals, 12.0)
	c.Assert(cfg.GetBool(ShowCIKey, DefShowCI), gc.Equals, true)
	c.Assert(cfg.GetFloat(HeightKey, DefHeight), gc.Equals, DefHeight)
}

func (s *cfgSuite) TestLoadINIMissingFile(c *gc.C) {
	_, err := LoadINI(filepath.Join(s.dir, "nope.ini"), TestSection)
	c.Assert(err, gc.NotNil)
	c.Assert(os.IsNotExist(errors.Cause(err)), gc.Equals, true)
}
