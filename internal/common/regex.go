package common

import "regexp"

// CompileRegex compiles pattern so that it ignores case.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}
