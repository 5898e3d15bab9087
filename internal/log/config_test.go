package log

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type ModuleLevelTestSuite struct {
	suite.Suite
	originalEnvFunc func(string) (string, bool)
	testEnv         map[string]string
}

func TestModuleLevelTestSuite(t *testing.T) {
	suite.Run(t, new(ModuleLevelTestSuite))
}

func (s *ModuleLevelTestSuite) SetupTest() {
	s.originalEnvFunc = envFunc
	s.testEnv = map[string]string{}
	envFunc = func(key string) (string, bool) {
		v, ok := s.testEnv[key]
		return v, ok && v != ""
	}
}

func (s *ModuleLevelTestSuite) TearDownTest() {
	envFunc = s.originalEnvFunc
}

func (s *ModuleLevelTestSuite) TestDefaultsToInfo() {
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"Lobby"}))
}

func (s *ModuleLevelTestSuite) TestGlobalLevel() {
	s.testEnv["LOG_LEVEL"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Lobby"}))
}

func (s *ModuleLevelTestSuite) TestMostSpecificWins() {
	s.testEnv["LOG_LEVEL"] = "error"
	s.testEnv["LOG_LEVEL__LOBBY"] = "warn"
	s.testEnv["LOG_LEVEL__LOBBY__PROBER"] = "debug"

	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Lobby", "Prober"}))
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"Lobby", "Directory"}))
	s.Equal(zapcore.ErrorLevel, moduleLevel([]string{"Session"}))
}

func (s *ModuleLevelTestSuite) TestCamelCaseModuleNames() {
	s.testEnv["LOG_LEVEL__SPECTATOR_SESSION"] = "warn"
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"SpectatorSession"}))
}

func (s *ModuleLevelTestSuite) TestInvalidLevelFallsThrough() {
	s.testEnv["LOG_LEVEL__LOBBY"] = "loud"
	s.testEnv["LOG_LEVEL"] = "warn"
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"Lobby"}))
}

func (s *ModuleLevelTestSuite) TestLevelKeys() {
	s.Equal([]string{
		"LOG_LEVEL__REALTIME__REDIS",
		"LOG_LEVEL__REALTIME",
		"LOG_LEVEL",
	}, levelKeys([]string{"Realtime", "Redis"}))
	s.Equal([]string{"LOG_LEVEL"}, levelKeys(nil))
}

func (s *ModuleLevelTestSuite) TestParseLevel() {
	lv, ok := parseLevel(" WARN ")
	s.True(ok)
	s.Equal(zapcore.WarnLevel, lv)

	_, ok = parseLevel("verbose")
	s.False(ok)
}

func (s *ModuleLevelTestSuite) TestWithKeepsFieldsAcrossModules() {
	logger := NewNop().With(RoomCode("ABC123")).Module("Session")
	s.Len(logger.fields, 1)
	s.Equal([]string{"Session"}, logger.names)
}
