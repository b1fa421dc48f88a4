package shell

func MergeEnvironment(base []string, overrides map[string]string) []string {
	return mergeEnvironment(base, overrides)
}
