//go:build fallback

package ntversion

const activeStrategy = StrategyDynamic

func versionNumbers() (major, minor, build uint32, err error) {
	return dynamicVersionNumbers()
}
