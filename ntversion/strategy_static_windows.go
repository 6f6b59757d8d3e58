//go:build !fallback

package ntversion

const activeStrategy = StrategyStatic

func versionNumbers() (major, minor, build uint32, err error) {
	return staticVersionNumbers()
}
